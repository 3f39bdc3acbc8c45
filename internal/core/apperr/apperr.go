package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into one of the user-facing
// categories. Handlers and the checkout flow switch on Kind exhaustively
// instead of matching message substrings.
type Kind int

const (
	// KindNetwork covers transport failures and timeouts on backend calls.
	KindNetwork Kind = iota
	// KindSessionExpired covers missing or rejected auth tokens.
	KindSessionExpired
	// KindValidation covers client-side form constraint violations.
	KindValidation
	// KindPrecondition covers checkout business preconditions.
	KindPrecondition
	// KindPaymentDeclined covers explicit non-success from payment verification.
	KindPaymentDeclined
)

// Error is a tagged application error with a user-facing title/message pair.
type Error struct {
	Kind    Kind
	Title   string
	Message string
	// Fields holds per-field validation messages for KindValidation.
	Fields map[string]string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNetwork:
		return http.StatusBadGateway
	case KindSessionExpired:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindPrecondition:
		return http.StatusUnprocessableEntity
	case KindPaymentDeclined:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Is lets errors.Is match two precondition errors by title, so the named
// precondition values below work as sentinels even after wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Title == t.Title
}

// Network wraps a transport failure.
func Network(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Title:   "Connection problem",
		Message: "Please check your internet connection and try again.",
		Err:     err,
	}
}

// SessionExpired signals a missing or rejected auth token.
func SessionExpired() *Error {
	return &Error{
		Kind:    KindSessionExpired,
		Title:   "Session expired",
		Message: "Please sign in again to continue.",
	}
}

// Validation builds a field-level validation error.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Title:   "Invalid input",
		Message: "Please correct the highlighted fields.",
		Fields:  fields,
	}
}

// PaymentDeclined signals that payment verification reported non-success.
func PaymentDeclined(message string) *Error {
	if message == "" {
		message = "Your payment could not be verified."
	}
	return &Error{
		Kind:    KindPaymentDeclined,
		Title:   "Payment failed",
		Message: message,
	}
}

func precondition(title, message string) *Error {
	return &Error{Kind: KindPrecondition, Title: title, Message: message}
}

// Named checkout preconditions. Each aborts the current multi-step operation
// without further side effects.
var (
	ErrMissingPrescription = precondition("Missing prescription",
		"A prescription is required before placing this order.")
	ErrIncompletePatientProfile = precondition("Incomplete patient profile",
		"Patient name and phone number are required.")
	ErrIncompleteAddress = precondition("Incomplete delivery address",
		"A complete delivery address with street and city is required.")
	ErrEmptyCart = precondition("Empty cart",
		"Add at least one item to your cart before checking out.")
	ErrInvalidOrderData = precondition("Invalid order data",
		"The order could not be prepared for payment. Please try again.")
	ErrPaymentSetup = precondition("Payment setup issue",
		"Online payment is unavailable right now. Please try again or choose cash on delivery.")
	ErrIncompletePaymentData = precondition("Incomplete payment data",
		"Payment details were missing or incomplete. No charge was made.")
	ErrOrderInProgress = precondition("Order in progress",
		"Your order is already being placed. Please wait.")
)
