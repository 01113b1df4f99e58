package service

import (
	"context"

	"github.com/harborview/membership/internal/cache"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/domain/recommendation"
	"github.com/harborview/membership/internal/logger"
)

// cachedRecommendationService memoizes recommendations by plan fingerprint.
// The engine is deterministic for a fixed catalog, so a cached result is
// indistinguishable from a recomputed one.
type cachedRecommendationService struct {
	inner  RecommendationService
	cache  cache.Cache
	logger *logger.Logger
}

func NewCachedRecommendationService(
	inner RecommendationService,
	c cache.Cache,
	logger *logger.Logger,
) RecommendationService {
	return &cachedRecommendationService{
		inner:  inner,
		cache:  c,
		logger: logger,
	}
}

func (s *cachedRecommendationService) Recommend(ctx context.Context, visitPlan plan.VisitPlan) recommendation.Recommendation {
	key := cache.GenerateKey(cache.PrefixRecommendation, visitPlan.Fingerprint())

	if value, found := s.cache.Get(ctx, key); found {
		if rec, ok := value.(recommendation.Recommendation); ok {
			s.logger.Debugw("recommendation cache hit", "key", key)
			return rec
		}
	}

	rec := s.inner.Recommend(ctx, visitPlan)
	s.cache.Set(ctx, key, rec, cache.DefaultExpiration)
	return rec
}
