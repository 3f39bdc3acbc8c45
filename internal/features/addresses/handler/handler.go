package handler

import (
	"errors"
	"net/http"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/addresses/domain"
	"pharmacart/internal/features/addresses/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AddressHandler handles HTTP requests for saved delivery addresses.
type AddressHandler struct {
	service ports.Service
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service ports.Service) *AddressHandler {
	return &AddressHandler{service: service}
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

// ServiceabilityRequest is the request body for a serviceability check.
type ServiceabilityRequest struct {
	City string `json:"city"`
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

	logger.Get().Error("Address request failed",
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}

// List handles GET /addresses.
// @Summary List saved addresses
// @Tags Addresses
// @Produce json
// @Success 200 {array} domain.Address
// @Failure 500 {object} ErrorResponse
// @Router /addresses [get]
func (h *AddressHandler) List(c *fiber.Ctx) error {
	addresses, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(addresses)
}

// Create handles POST /addresses.
// @Summary Save a new address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param address body domain.Address true "Address"
// @Success 201 {object} domain.Address
// @Failure 400 {object} ErrorResponse
// @Router /addresses [post]
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var address domain.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	created, err := h.service.Create(c.Context(), address)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// Update handles PUT /addresses/{id}.
// @Summary Update a saved address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param address body domain.Address true "Address"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /addresses/{id} [put]
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	var address domain.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}
	address.ID = c.Params("id")

	if err := h.service.Update(c.Context(), address); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Address updated",
	})
}

// Delete handles DELETE /addresses/{id}.
// @Summary Delete a saved address
// @Tags Addresses
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Address deleted",
	})
}

// CheckServiceability handles POST /addresses/serviceability.
// @Summary Check delivery availability for a city
// @Tags Addresses
// @Accept json
// @Produce json
// @Param city body ServiceabilityRequest true "City"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /addresses/serviceability [post]
func (h *AddressHandler) CheckServiceability(c *fiber.Ctx) error {
	var req ServiceabilityRequest
	if err := c.BodyParser(&req); err != nil || req.City == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "City is required",
			RayID:   rayID(c),
		})
	}

	available, err := h.service.CheckServiceability(c.Context(), req.City)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"available": available,
	})
}
