package handler

import (
	"errors"
	"io"
	"net/http"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	addressdomain "pharmacart/internal/features/addresses/domain"
	"pharmacart/internal/features/checkout/adapters"
	"pharmacart/internal/features/checkout/domain"
	"pharmacart/internal/features/checkout/service"
	prescriptiondomain "pharmacart/internal/features/prescriptions/domain"
	pricingdomain "pharmacart/internal/features/pricing/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(s *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
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

// SessionView is the externally visible checkout session state.
type SessionView struct {
	ID          string            `json:"id"`
	Step        domain.Step       `json:"step"`
	Draft       domain.OrderDraft `json:"draft"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// ConfirmRequest is the request body for placing the order.
type ConfirmRequest struct {
	PaymentOption string                     `json:"payment_option"`
	Payment       *domain.PaymentCredentials `json:"payment,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "Checkout session not found",
			RayID:   rayID(c),
		})
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.HTTPStatus()).JSON(ErrorResponse{
			Message: appErr.Message,
			Fields:  appErr.Fields,
			RayID:   rayID(c),
		})
	}

	logger.Get().Error("Checkout request failed",
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}

func view(sess service.Session) SessionView {
	return SessionView{
		ID:          sess.ID,
		Step:        sess.Step,
		Draft:       sess.Draft,
		FieldErrors: sess.FieldErrors,
	}
}

// Begin handles POST /checkout.
// @Summary Start a checkout session
// @Description Opens a new session over a snapshot of the current cart.
// @Tags Checkout
// @Produce json
// @Success 201 {object} SessionView
// @Failure 422 {object} ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Begin(c *fiber.Ctx) error {
	sess, err := h.service.Begin(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(view(sess))
}

// Get handles GET /checkout/{id}.
// @Summary Get the checkout session state
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionView
// @Failure 404 {object} ErrorResponse
// @Router /checkout/{id} [get]
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	sess, err := h.service.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(sess))
}

// SelectAddress handles POST /checkout/{id}/address.
// @Summary Select the delivery address
// @Description Records the address and advances the session to patient info.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param address body addressdomain.Address true "Delivery address"
// @Success 200 {object} SessionView
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout/{id}/address [post]
func (h *CheckoutHandler) SelectAddress(c *fiber.Ctx) error {
	var address addressdomain.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	sess, err := h.service.SelectAddress(c.Params("id"), address)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(sess))
}

// SubmitPatientInfo handles POST /checkout/{id}/patient.
// @Summary Submit the patient details
// @Description Records the patient info and advances the session to the order summary. Invalid input returns per-field messages and keeps the step.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param patient body domain.PatientInfo true "Patient details"
// @Success 200 {object} SessionView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkout/{id}/patient [post]
func (h *CheckoutHandler) SubmitPatientInfo(c *fiber.Ctx) error {
	var info domain.PatientInfo
	if err := c.BodyParser(&info); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	sess, err := h.service.SubmitPatientInfo(c.Params("id"), info)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(sess))
}

// AttachPrescription handles POST /checkout/{id}/prescriptions.
// @Summary Attach prescription images
// @Description Stages up to 5 images under the multipart field "prescriptions"; they upload when the order is confirmed.
// @Tags Checkout
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkout/{id}/prescriptions [post]
func (h *CheckoutHandler) AttachPrescription(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid multipart form",
			RayID:   rayID(c),
		})
	}

	var images []prescriptiondomain.Image
	for _, fh := range form.File["prescriptions"] {
		file, err := fh.Open()
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Unreadable image upload",
				RayID:   rayID(c),
			})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Unreadable image upload",
				RayID:   rayID(c),
			})
		}
		images = append(images, prescriptiondomain.Image{FileName: fh.Filename, Data: data})
	}

	if err := h.service.AttachPrescription(c.Context(), c.Params("id"), images); err != nil {
		if errors.Is(err, prescriptiondomain.ErrNoImages) || errors.Is(err, prescriptiondomain.ErrTooManyImages) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Prescriptions attached",
	})
}

// Confirm handles POST /checkout/{id}/confirm.
// @Summary Place the order
// @Description Runs the confirm sequence for the chosen payment option. Online payments require gateway credentials in the request body.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param confirm body ConfirmRequest true "Payment option and credentials"
// @Success 200 {object} domain.Result
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout/{id}/confirm [post]
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	payment := pricingdomain.PaymentOption(req.PaymentOption)
	if payment != pricingdomain.PaymentCOD && payment != pricingdomain.PaymentOnline {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "payment_option must be cod or online",
			RayID:   rayID(c),
		})
	}

	authorizer := adapters.NewClientSuppliedAuthorizer(req.Payment)
	result, err := h.service.Confirm(c.Context(), c.Params("id"), payment, authorizer)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusOK
	if result.Step == domain.StepFailed {
		status = http.StatusPaymentRequired
	}
	return c.Status(status).JSON(result)
}
