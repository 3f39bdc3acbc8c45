package handler

import (
	"errors"
	"net/http"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/catalog/domain"
	"pharmacart/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for product lookups.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// ProductView is a product together with its salt-matched alternatives.
type ProductView struct {
	Product domain.Product   `json:"product"`
	Similar []domain.Product `json:"similar"`
}

// GetProduct handles GET /products/{id}.
// @Summary Get a product with similar alternatives
// @Description Fetches the product and the other products sharing its salt composition.
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductView
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Product ID is required",
		})
	}

	product, err := h.service.GetProduct(c.Context(), id)
	if err != nil {
		logger.Get().Error("Failed to fetch product",
			zap.String("product_id", id),
			zap.Error(err),
		)

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"error": appErr.Message})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	// Similar products are best-effort; the detail view still renders
	// without them.
	similar, err := h.service.Similar(c.Context(), *product)
	if err != nil {
		logger.Get().Warn("Failed to fetch similar products",
			zap.String("product_id", id),
			zap.Error(err),
		)
		similar = []domain.Product{}
	}

	return c.Status(http.StatusOK).JSON(ProductView{
		Product: *product,
		Similar: similar,
	})
}
