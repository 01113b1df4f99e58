package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/harborview/membership/internal/api/v1"
	"github.com/harborview/membership/internal/config"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/rest/middleware"
	"github.com/harborview/membership/internal/types"
)

type Handlers struct {
	Health         *v1.HealthHandler
	Recommendation *v1.RecommendationHandler
	Catalog        *v1.CatalogHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Recommendation routes
	recommendations := router.Group("/recommendations")
	{
		recommendations.POST("", handlers.Recommendation.CreateRecommendation)
	}

	// Catalog routes
	catalog := router.Group("/catalog")
	{
		catalog.GET("", handlers.Catalog.GetCatalog)
		catalog.GET("/venues/:venue", handlers.Catalog.GetVenuePricing)
		catalog.GET("/products/:id", handlers.Catalog.GetProduct)
	}
}
