package ports

import (
	"context"

	cartdomain "pharmacart/internal/features/cart/domain"
	"pharmacart/internal/features/coupons/domain"
)

// Provider defines the secondary port for coupon listing and validation
// against the pharmacy backend. Validate performs exactly one round trip.
type Provider interface {
	// List retrieves the available coupons.
	List(ctx context.Context) ([]domain.Coupon, error)
	// Validate asks the backend whether code applies to the given cart.
	// A transport error or a non-success response both mean "not applied".
	Validate(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error)
}

// Resolver defines the primary port for coupon state on the cart.
type Resolver interface {
	// List retrieves the available coupons.
	List(ctx context.Context) ([]domain.Coupon, error)
	// Apply validates code against the current cart and applies it on success.
	Apply(ctx context.Context, code string) (*domain.ValidationResult, error)
	// Remove detaches the current coupon without a network call.
	Remove()
	// Applied returns the active coupon, or nil.
	Applied() *domain.Applied
	// State returns the coupon lifecycle state.
	State() domain.State
	// Message returns the last rejection message, if any.
	Message() string
}
