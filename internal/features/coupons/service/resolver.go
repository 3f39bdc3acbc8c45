package service

import (
	"context"
	"fmt"
	"sync"

	"pharmacart/internal/core/logger"
	cartports "pharmacart/internal/features/cart/ports"
	"pharmacart/internal/features/coupons/domain"
	"pharmacart/internal/features/coupons/ports"

	"go.uber.org/zap"
)

// CouponResolver implements ports.Resolver. Every application re-validates
// remotely; nothing is cached across validations. A failed validation always
// reverts the cart to its pre-coupon totals.
//
// Validations are tagged with a monotonic sequence number. Only the most
// recently initiated validation may settle the state, so a slow round trip
// cannot overwrite the result of a later one (last-resolved-wins).
type CouponResolver struct {
	provider ports.Provider
	cart     cartports.Store

	mu      sync.Mutex
	seq     uint64
	state   domain.State
	code    string
	applied *domain.Applied
	message string
}

// NewCouponResolver creates a resolver bound to the given cart store.
func NewCouponResolver(provider ports.Provider, cart cartports.Store) *CouponResolver {
	return &CouponResolver{
		provider: provider,
		cart:     cart,
		state:    domain.StateUnapplied,
	}
}

// List retrieves the available coupons.
func (r *CouponResolver) List(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := r.provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list coupons: %w", err)
	}
	return coupons, nil
}

// Apply validates code against the current cart and applies it on success.
// On any failure the coupon reverts to unapplied; no partial discount is
// ever carried over.
func (r *CouponResolver) Apply(ctx context.Context, code string) (*domain.ValidationResult, error) {
	items := r.cart.Items()

	var saleTotal float64
	for _, item := range items {
		saleTotal += item.UnitSalePrice * float64(item.Quantity)
	}

	r.mu.Lock()
	r.seq++
	mySeq := r.seq
	r.code = code
	r.state = domain.StatePending
	r.mu.Unlock()

	result, err := r.provider.Validate(ctx, code, items, saleTotal)

	r.mu.Lock()
	defer r.mu.Unlock()

	if mySeq != r.seq {
		// A newer validation was initiated while this one was in flight;
		// its settlement owns the state.
		logger.Get().Debug("Discarding stale coupon validation",
			zap.String("code", code),
			zap.Uint64("seq", mySeq),
			zap.Uint64("latest", r.seq),
		)
		return result, err
	}

	if err != nil {
		r.state = domain.StateRejected
		r.applied = nil
		r.message = "Could not validate coupon. Please try again."
		return nil, fmt.Errorf("service: coupon validation failed: %w", err)
	}

	if !result.Success {
		r.state = domain.StateRejected
		r.applied = nil
		r.message = result.Message
		return result, nil
	}

	r.state = domain.StateApplied
	r.applied = &domain.Applied{Code: code, Discount: result.Discount, GrandTotal: result.GrandTotal}
	r.message = ""
	return result, nil
}

// Revalidate re-runs validation for the current code, if any.
// Wired to cart mutations: discount eligibility depends on cart contents.
func (r *CouponResolver) Revalidate(ctx context.Context) {
	r.mu.Lock()
	code := r.code
	active := r.state == domain.StateApplied || r.state == domain.StatePending
	r.mu.Unlock()

	if code == "" || !active {
		return
	}

	if _, err := r.Apply(ctx, code); err != nil {
		logger.Get().Warn("Coupon re-validation failed", zap.String("code", code), zap.Error(err))
	}
}

// Remove detaches the current coupon without a network call.
func (r *CouponResolver) Remove() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++ // any in-flight validation becomes stale
	r.state = domain.StateUnapplied
	r.code = ""
	r.applied = nil
	r.message = ""
}

// Applied returns the active coupon, or nil.
func (r *CouponResolver) Applied() *domain.Applied {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applied == nil {
		return nil
	}
	copied := *r.applied
	return &copied
}

// State returns the coupon lifecycle state.
func (r *CouponResolver) State() domain.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Message returns the last rejection message, if any.
func (r *CouponResolver) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}
