package adapters

import (
	"context"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/features/checkout/domain"
)

// ClientSuppliedAuthorizer implements ports.PaymentAuthorizer from
// credentials the caller already obtained through the gateway's own
// checkout flow. The API layer builds one per confirm request.
type ClientSuppliedAuthorizer struct {
	creds *domain.PaymentCredentials
}

// NewClientSuppliedAuthorizer wraps request-supplied credentials; creds may
// be nil when the caller sent none.
func NewClientSuppliedAuthorizer(creds *domain.PaymentCredentials) *ClientSuppliedAuthorizer {
	return &ClientSuppliedAuthorizer{creds: creds}
}

// Authorize yields the supplied credentials, or the incomplete-payment error
// when they are absent or missing a field.
func (a *ClientSuppliedAuthorizer) Authorize(_ context.Context, _ string, _ domain.CreatedOrder) (*domain.PaymentCredentials, error) {
	if a.creds == nil || !a.creds.Complete() {
		return nil, apperr.ErrIncompletePaymentData
	}
	c := *a.creds
	return &c, nil
}
