package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	addressdomain "pharmacart/internal/features/addresses/domain"
	cartports "pharmacart/internal/features/cart/ports"
	"pharmacart/internal/features/checkout/domain"
	"pharmacart/internal/features/checkout/ports"
	couponports "pharmacart/internal/features/coupons/ports"
	prescriptiondomain "pharmacart/internal/features/prescriptions/domain"
	prescriptionports "pharmacart/internal/features/prescriptions/ports"
	pricingdomain "pharmacart/internal/features/pricing/domain"
	settingsports "pharmacart/internal/features/settings/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for an unknown or expired checkout session id.
var ErrSessionNotFound = errors.New("checkout session not found")

// patientFieldMessages maps validator failures to inline messages per field.
var patientFieldMessages = map[string]string{
	"PatientName":  "Patient name is required",
	"PatientPhone": "Patient phone must be a 10-digit number",
	"HospitalName": "Hospital name is required",
	"DoctorName":   "Doctor name is required",
}

// Session is the server-side state of one checkout flow. Sessions live in
// memory only; abandoning one discards the draft.
type Session struct {
	ID   string
	Step domain.Step
	// Draft accumulates the checkout inputs across steps.
	Draft domain.OrderDraft
	// FieldErrors holds the messages from the last rejected step input.
	FieldErrors map[string]string

	images   []prescriptiondomain.Image
	idemKey  string
	inFlight bool
}

// CheckoutService drives the linear checkout flow. The step order is fixed:
// address selection, then patient info, then order summary, then a terminal
// success or failure. A step only advances when its input validates, so a
// later step can rely on every earlier step's data being present.
//
// Confirm distinguishes two non-success shapes. A returned error means the
// attempt aborted and the session stays on the order summary step, so the
// user may retry. A Result with StepFailed means the flow reached its failed
// terminal (payment declined or cancelled) and the session is finished.
type CheckoutService struct {
	gateway  ports.OrderGateway
	uploader prescriptionports.Uploader
	pending  prescriptionports.PendingRepository
	cart     cartports.Store
	settings settingsports.Service
	coupons  couponports.Resolver
	validate *validator.Validate

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(
	gateway ports.OrderGateway,
	uploader prescriptionports.Uploader,
	pending prescriptionports.PendingRepository,
	cart cartports.Store,
	settings settingsports.Service,
	coupons couponports.Resolver,
) *CheckoutService {
	return &CheckoutService{
		gateway:  gateway,
		uploader: uploader,
		pending:  pending,
		cart:     cart,
		settings: settings,
		coupons:  coupons,
		validate: validator.New(),
		sessions: make(map[string]*Session),
	}
}

// Begin opens a new checkout session over a snapshot of the current cart.
// Later cart mutations do not affect a session already in flight.
func (s *CheckoutService) Begin(ctx context.Context) (Session, error) {
	snapshot := s.cart.Snapshot()
	if snapshot.Empty() {
		return Session{}, apperr.ErrEmptyCart
	}

	sess := &Session{
		ID:      uuid.NewString(),
		Step:    domain.StepAddress,
		Draft:   domain.OrderDraft{Snapshot: snapshot},
		idemKey: uuid.NewString(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess, nil
}

// Get returns a copy of the session state.
func (s *CheckoutService) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

// SelectAddress records the delivery address and advances to patient info.
// An address without street and city is rejected and the step does not move.
func (s *CheckoutService) SelectAddress(id string, address addressdomain.Address) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if sess.Step != domain.StepAddress {
		return *sess, fmt.Errorf("address selection is not available from step %s", sess.Step)
	}
	if !address.Complete() {
		return *sess, apperr.ErrIncompleteAddress
	}

	addr := address
	sess.Draft.Address = &addr
	sess.FieldErrors = nil
	sess.Step = domain.StepPatientInfo
	return *sess, nil
}

// SubmitPatientInfo records the patient details and advances to the order
// summary. Invalid input keeps the session on the patient info step and
// reports per-field messages.
func (s *CheckoutService) SubmitPatientInfo(id string, info domain.PatientInfo) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if sess.Step != domain.StepPatientInfo {
		return *sess, fmt.Errorf("patient info is not available from step %s", sess.Step)
	}

	if err := s.validatePatient(info); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			sess.FieldErrors = appErr.Fields
		}
		return *sess, err
	}

	patient := info
	sess.Draft.Patient = &patient
	sess.FieldErrors = nil
	sess.Step = domain.StepOrderSummary
	return *sess, nil
}

// AttachPrescription stages prescription images for upload at confirm time
// and mirrors their names into the durable pending list.
func (s *CheckoutService) AttachPrescription(ctx context.Context, id string, images []prescriptiondomain.Image) error {
	if len(images) == 0 {
		return prescriptiondomain.ErrNoImages
	}
	if len(images) > prescriptiondomain.MaxImagesPerUpload {
		return prescriptiondomain.ErrTooManyImages
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	if sess.Step == domain.StepSuccess || sess.Step == domain.StepFailed {
		s.mu.Unlock()
		return fmt.Errorf("prescription upload is not available from step %s", sess.Step)
	}
	sess.images = append([]prescriptiondomain.Image(nil), images...)
	sess.Draft.PrescriptionID = ""
	s.mu.Unlock()

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.FileName)
	}
	if err := s.pending.Save(ctx, names); err != nil {
		logger.Get().Warn("Failed to persist pending prescriptions", zap.Error(err))
	}
	return nil
}

// Confirm places the order from the order summary step. The sequence is
// strictly ordered: prescription upload, local precondition checks, order
// creation, then payment handling for the chosen option. A second Confirm
// while one is in flight is rejected without any side effect.
func (s *CheckoutService) Confirm(ctx context.Context, id string, payment pricingdomain.PaymentOption, authorizer ports.PaymentAuthorizer) (*domain.Result, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.inFlight {
		s.mu.Unlock()
		return nil, apperr.ErrOrderInProgress
	}
	if sess.Step != domain.StepOrderSummary {
		s.mu.Unlock()
		return nil, fmt.Errorf("confirm is not available from step %s", sess.Step)
	}
	sess.inFlight = true
	sess.Draft.Payment = payment
	draft := sess.Draft
	images := sess.images
	idemKey := sess.idemKey
	s.mu.Unlock()

	result, prescriptionID, err := s.placeOrder(ctx, draft, images, idemKey, authorizer)

	s.mu.Lock()
	sess.inFlight = false
	if prescriptionID != "" {
		// Keep the uploaded id so a retry does not upload again.
		sess.Draft.PrescriptionID = prescriptionID
	}
	if result != nil {
		sess.Step = result.Step
	}
	s.mu.Unlock()

	return result, err
}

// placeOrder runs the confirm sequence outside the session lock. It returns
// the uploaded prescription id (if any) even on failure so it survives for
// the next attempt.
func (s *CheckoutService) placeOrder(
	ctx context.Context,
	draft domain.OrderDraft,
	images []prescriptiondomain.Image,
	idemKey string,
	authorizer ports.PaymentAuthorizer,
) (*domain.Result, string, error) {
	prescriptionID := draft.PrescriptionID
	if prescriptionID == "" && len(images) > 0 {
		uploaded, err := s.uploader.Upload(ctx, images)
		if err != nil {
			return nil, "", fmt.Errorf("prescription upload failed: %w", err)
		}
		prescriptionID = uploaded
		draft.PrescriptionID = uploaded
	}

	if err := checkPreconditions(draft); err != nil {
		return nil, prescriptionID, err
	}
	if draft.Payment == pricingdomain.PaymentCOD && !draft.Snapshot.CODEligible() {
		return nil, prescriptionID, apperr.Validation(map[string]string{
			"payment_option": "Cash on delivery is not available for some items in your cart",
		})
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, prescriptionID, err
	}
	breakdown := pricingdomain.Compute(draft.Snapshot.Items, *settings, s.coupons.Applied(), draft.Payment)

	created, err := s.gateway.CreateOrder(ctx, draft, breakdown, idemKey)
	if err != nil {
		return nil, prescriptionID, err
	}

	if draft.Payment == pricingdomain.PaymentCOD {
		s.finalize(ctx)
		return &domain.Result{Step: domain.StepSuccess, OrderID: created.OrderID}, prescriptionID, nil
	}

	if created.GatewayOrderID == "" || created.Amount <= 0 {
		return nil, prescriptionID, apperr.ErrInvalidOrderData
	}

	key, err := s.gateway.GatewayKey(ctx)
	if err != nil {
		return nil, prescriptionID, fmt.Errorf("%w: %v", apperr.ErrPaymentSetup, err)
	}

	creds, err := authorizer.Authorize(ctx, key, *created)
	if err != nil {
		if errors.Is(err, apperr.ErrIncompletePaymentData) {
			return nil, prescriptionID, err
		}
		return &domain.Result{
			Step:    domain.StepFailed,
			OrderID: created.OrderID,
			Message: "Payment was cancelled or not completed",
		}, prescriptionID, nil
	}
	if creds == nil || !creds.Complete() {
		return nil, prescriptionID, apperr.ErrIncompletePaymentData
	}

	verified, err := s.gateway.VerifyPayment(ctx, *creds)
	if err != nil {
		return nil, prescriptionID, err
	}
	if verified.Redirect != domain.RedirectSuccess {
		return &domain.Result{
			Step:    domain.StepFailed,
			OrderID: created.OrderID,
			Message: apperr.PaymentDeclined(verified.Message).Message,
		}, prescriptionID, nil
	}

	s.finalize(ctx)
	return &domain.Result{Step: domain.StepSuccess, OrderID: created.OrderID}, prescriptionID, nil
}

// finalize clears the local state after a completed order: cart, coupon,
// pending prescriptions.
func (s *CheckoutService) finalize(ctx context.Context) {
	s.cart.ReplaceAll(ctx, nil)
	s.coupons.Remove()
	if err := s.pending.Clear(ctx); err != nil {
		logger.Get().Warn("Failed to clear pending prescriptions", zap.Error(err))
	}
}

// checkPreconditions gates order creation. Each failure names the missing
// piece and is checked before any network call, so an incomplete draft never
// reaches the backend.
func checkPreconditions(draft domain.OrderDraft) error {
	if draft.PrescriptionID == "" {
		return apperr.ErrMissingPrescription
	}
	if draft.Patient == nil || draft.Patient.PatientName == "" || draft.Patient.PatientPhone == "" {
		return apperr.ErrIncompletePatientProfile
	}
	if draft.Address == nil || !draft.Address.Complete() {
		return apperr.ErrIncompleteAddress
	}
	if draft.Snapshot.Empty() {
		return apperr.ErrEmptyCart
	}
	return nil
}

// validatePatient converts validator failures into field-level messages.
func (s *CheckoutService) validatePatient(info domain.PatientInfo) error {
	err := s.validate.Struct(info)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	if invalid, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range invalid {
			if msg, known := patientFieldMessages[fe.Field()]; known {
				fields[fe.Field()] = msg
			} else {
				fields[fe.Field()] = "Invalid value"
			}
		}
	}
	return apperr.Validation(fields)
}
