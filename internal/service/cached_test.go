package service

import (
	"context"
	"testing"

	"github.com/harborview/membership/internal/cache"
	"github.com/harborview/membership/internal/config"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/domain/recommendation"
	"github.com/harborview/membership/internal/testutil"
	"github.com/harborview/membership/internal/types"
	"github.com/stretchr/testify/suite"
)

// countingEngine wraps a real engine and counts how often it is consulted
type countingEngine struct {
	inner RecommendationService
	calls int
}

func (e *countingEngine) Recommend(ctx context.Context, visitPlan plan.VisitPlan) recommendation.Recommendation {
	e.calls++
	return e.inner.Recommend(ctx, visitPlan)
}

type CachedRecommendationSuite struct {
	suite.Suite
	ctx      context.Context
	counting *countingEngine
	cached   RecommendationService
	plan     plan.VisitPlan
}

func TestCachedRecommendationService(t *testing.T) {
	suite.Run(t, new(CachedRecommendationSuite))
}

func (s *CachedRecommendationSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	c := testutil.TestCatalog()
	log := testutil.TestLogger()

	admission := NewAdmissionService(c, log)
	discount := NewDiscountServiceWithClock(c, admission, log, testutil.ClockOutsideWindow())
	s.counting = &countingEngine{inner: NewRecommendationService(c, admission, discount, log)}
	s.cached = NewCachedRecommendationService(
		s.counting, cache.NewInMemoryCache(config.GetDefaultConfig(), log), log)

	s.plan = plan.New(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 4},
	}, c.Constraints)
}

func (s *CachedRecommendationSuite) TestRepeatedPlansHitTheCache() {
	first := s.cached.Recommend(s.ctx, s.plan)
	second := s.cached.Recommend(s.ctx, s.plan)

	s.Equal(1, s.counting.calls)
	s.Equal(first, second)
}

func (s *CachedRecommendationSuite) TestDistinctPlansMissTheCache() {
	s.cached.Recommend(s.ctx, s.plan)

	other := plan.New(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 5},
	}, testutil.TestCatalog().Constraints)
	s.cached.Recommend(s.ctx, other)

	s.Equal(2, s.counting.calls)
}
