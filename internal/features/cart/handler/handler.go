package handler

import (
	"errors"
	"net/http"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/cart/domain"
	"pharmacart/internal/features/cart/ports"
	coupondomain "pharmacart/internal/features/coupons/domain"
	couponports "pharmacart/internal/features/coupons/ports"
	pricingdomain "pharmacart/internal/features/pricing/domain"
	settingsports "pharmacart/internal/features/settings/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the cart and its price breakdown.
type CartHandler struct {
	cart     ports.Store
	settings settingsports.Service
	coupons  couponports.Resolver
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart ports.Store, settings settingsports.Service, coupons couponports.Resolver) *CartHandler {
	return &CartHandler{
		cart:     cart,
		settings: settings,
		coupons:  coupons,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Fields holds per-field messages for validation failures.
	Fields map[string]string `json:"fields,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// CartView is the cart with its current price breakdown and coupon state.
type CartView struct {
	Items       []domain.LineItem       `json:"items"`
	Count       int                     `json:"count"`
	Breakdown   pricingdomain.Breakdown `json:"breakdown"`
	Coupon      *coupondomain.Applied   `json:"coupon,omitempty"`
	CouponState coupondomain.State      `json:"coupon_state"`
}

// AddItemsRequest is the request body for adding items.
type AddItemsRequest struct {
	Items []domain.LineItem `json:"items"`
}

// UpdateQuantityRequest is the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.HTTPStatus()).JSON(ErrorResponse{
			Message: appErr.Message,
			Fields:  appErr.Fields,
			RayID:   rayID(c),
		})
	}
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}

// GetCart handles GET /cart.
// @Summary Get the cart with its price breakdown
// @Description Returns the cart items, the computed totals for the chosen payment option, and the coupon state.
// @Tags Cart
// @Produce json
// @Param payment_option query string false "cod or online (default online)"
// @Success 200 {object} CartView
// @Failure 502 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	payment := pricingdomain.PaymentOption(c.Query("payment_option", string(pricingdomain.PaymentOnline)))

	settings, err := h.settings.Get(c.Context())
	if err != nil {
		logger.Get().Error("Failed to fetch delivery settings",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return respondError(c, err)
	}

	snapshot := h.cart.Snapshot()
	breakdown := pricingdomain.Compute(snapshot.Items, *settings, h.coupons.Applied(), payment)

	return c.Status(http.StatusOK).JSON(CartView{
		Items:       snapshot.Items,
		Count:       snapshot.Count,
		Breakdown:   breakdown,
		Coupon:      h.coupons.Applied(),
		CouponState: h.coupons.State(),
	})
}

// AddItems handles POST /cart/items.
// @Summary Add items to the cart
// @Description Merges the given items into the cart; existing products get their quantity incremented.
// @Tags Cart
// @Accept json
// @Produce json
// @Param items body AddItemsRequest true "Items to add"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItems(c *fiber.Ctx) error {
	var req AddItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}
	if len(req.Items) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "At least one item is required",
			RayID:   rayID(c),
		})
	}

	h.cart.AddItems(c.Context(), req.Items)
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

// UpdateQuantity handles PATCH /cart/items/{productId}.
// @Summary Change a line item's quantity
// @Description Sets the quantity for one product; zero removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param quantity body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{productId} [patch]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Product ID is required",
			RayID:   rayID(c),
		})
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	h.cart.UpdateQuantity(c.Context(), productID, req.Quantity)
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

// RemoveItem handles DELETE /cart/items/{productId}.
// @Summary Remove a line item
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Product ID is required",
			RayID:   rayID(c),
		})
	}

	h.cart.RemoveItem(c.Context(), productID)
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}
