package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/types"
)

type CatalogHandler struct {
	catalog *catalog.PricingCatalog
	log     *logger.Logger
}

func NewCatalogHandler(catalog *catalog.PricingCatalog, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// @Summary Get the pricing catalog
// @Description Returns the active pricing catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.PricingCatalog
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}

// @Summary Get one venue's admission pricing
// @Description Returns admission pricing for a single venue
// @Tags Catalog
// @Produce json
// @Param venue path string true "Venue identifier"
// @Success 200 {object} catalog.VenuePricing
// @Router /catalog/venues/{venue} [get]
func (h *CatalogHandler) GetVenuePricing(c *gin.Context) {
	venue := types.Venue(c.Param("venue"))
	if err := venue.Validate(); err != nil {
		c.Error(err)
		return
	}

	pricing, err := h.catalog.VenuePricing(venue)
	if err != nil {
		h.log.Error("Failed to get venue pricing", "venue", venue, "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

// @Summary Get one membership product
// @Description Returns a membership product's price table and benefits
// @Tags Catalog
// @Produce json
// @Param id path string true "Product identifier"
// @Success 200 {object} catalog.MembershipProduct
// @Router /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := types.ProductID(c.Param("id"))
	if err := id.Validate(); err != nil {
		c.Error(err)
		return
	}

	product, err := h.catalog.Product(id)
	if err != nil {
		h.log.Error("Failed to get product", "product", id, "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}
