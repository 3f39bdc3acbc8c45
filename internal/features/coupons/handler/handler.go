package handler

import (
	"errors"
	"net/http"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/coupons/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CouponHandler handles HTTP requests for coupon listing and application.
type CouponHandler struct {
	resolver ports.Resolver
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(resolver ports.Resolver) *CouponHandler {
	return &CouponHandler{resolver: resolver}
}

// ApplyRequest is the request body for applying a coupon.
type ApplyRequest struct {
	Code string `json:"code"`
}

// List handles GET /coupons.
// @Summary List available coupons
// @Tags Coupons
// @Produce json
// @Success 200 {array} domain.Coupon
// @Failure 502 {object} map[string]string
// @Router /coupons [get]
func (h *CouponHandler) List(c *fiber.Ctx) error {
	coupons, err := h.resolver.List(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list coupons", zap.Error(err))

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"error": appErr.Message})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(http.StatusOK).JSON(coupons)
}

// Apply handles POST /cart/coupon.
// @Summary Apply a coupon to the cart
// @Description Validates the code against the current cart. A rejected code returns the server's reason with no discount applied.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body ApplyRequest true "Coupon code"
// @Success 200 {object} domain.ValidationResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /cart/coupon [post]
func (h *CouponHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Coupon code is required",
		})
	}

	result, err := h.resolver.Apply(c.Context(), req.Code)
	if err != nil {
		logger.Get().Warn("Coupon validation failed",
			zap.String("code", req.Code),
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
	return c.Status(http.StatusOK).JSON(result)
}

// Remove handles DELETE /cart/coupon.
// @Summary Remove the applied coupon
// @Description Detaches the coupon locally without a network call.
// @Tags Coupons
// @Produce json
// @Success 200 {object} map[string]string
// @Router /cart/coupon [delete]
func (h *CouponHandler) Remove(c *fiber.Ctx) error {
	h.resolver.Remove()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Coupon removed",
	})
}

// State handles GET /cart/coupon.
// @Summary Get the coupon state on the cart
// @Tags Coupons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /cart/coupon [get]
func (h *CouponHandler) State(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"state":   h.resolver.State(),
		"applied": h.resolver.Applied(),
		"message": h.resolver.Message(),
	})
}
