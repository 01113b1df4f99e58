package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborview/membership/internal/api"
	v1 "github.com/harborview/membership/internal/api/v1"
	"github.com/harborview/membership/internal/cache"
	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/config"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/service"
	"github.com/harborview/membership/internal/validator"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title Harborview Membership API
// @version 1.0
// @description Membership recommendation service for the Harborview museum network
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Load .env if present; real deployments configure via environment
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Pricing catalog
			provideCatalog,

			// Services
			service.NewAdmissionService,
			service.NewDiscountService,
			provideRecommendationService,
		),
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideCatalog(cfg *config.Configuration, log *logger.Logger) (*catalog.PricingCatalog, error) {
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Path != "" {
		log.Infow("loaded pricing catalog", "path", cfg.Catalog.Path)
	}
	return c, nil
}

// provideRecommendationService wraps the engine with the fingerprint cache;
// the engine is deterministic so cached results are always safe to serve
func provideRecommendationService(
	c *catalog.PricingCatalog,
	admission service.AdmissionService,
	discount service.DiscountService,
	memo cache.Cache,
	log *logger.Logger,
) service.RecommendationService {
	engine := service.NewRecommendationService(c, admission, discount, log)
	return service.NewCachedRecommendationService(engine, memo, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	c *catalog.PricingCatalog,
	recommendationService service.RecommendationService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(log),
		Recommendation: v1.NewRecommendationHandler(recommendationService, c, log),
		Catalog:        v1.NewCatalogHandler(c, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
