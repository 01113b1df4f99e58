package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/membership/internal/api/dto"
	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/domain/plan"
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/service"
	"github.com/harborview/membership/internal/types"
)

type RecommendationHandler struct {
	service service.RecommendationService
	catalog *catalog.PricingCatalog
	log     *logger.Logger
}

func NewRecommendationHandler(
	service service.RecommendationService,
	catalog *catalog.PricingCatalog,
	log *logger.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{service: service, catalog: catalog, log: log}
}

// @Summary Recommend a membership
// @Description Computes the most economical admission option for a planned
// season of visits
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body dto.CreateRecommendationRequest true "Visit plan"
// @Success 200 {object} dto.RecommendationResponse
// @Router /recommendations [post]
func (h *RecommendationHandler) CreateRecommendation(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	visitPlan := plan.New(req.ToVisitPlanParams(), h.catalog.Constraints)
	rec := h.service.Recommend(ctx, visitPlan)

	h.log.Infow("computed recommendation",
		"request_id", types.GetRequestID(ctx),
		"product", rec.Product,
		"total_cost", rec.TotalCost)

	c.JSON(http.StatusOK, dto.ToRecommendationResponse(rec))
}
