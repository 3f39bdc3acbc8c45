package ports

import (
	"context"

	"pharmacart/internal/features/checkout/domain"
	pricingdomain "pharmacart/internal/features/pricing/domain"
)

// OrderGateway defines the secondary port for order creation and payment
// verification against the pharmacy backend.
type OrderGateway interface {
	// CreateOrder submits the draft with its computed breakdown. The
	// idempotency key is stable per checkout session so an accidental
	// duplicate submission is server-detectable.
	CreateOrder(ctx context.Context, draft domain.OrderDraft, breakdown pricingdomain.Breakdown, idempotencyKey string) (*domain.CreatedOrder, error)
	// GatewayKey fetches the payment gateway's public API key.
	GatewayKey(ctx context.Context) (string, error)
	// VerifyPayment submits payment credentials for verification.
	VerifyPayment(ctx context.Context, creds domain.PaymentCredentials) (*domain.VerificationResult, error)
}

// PaymentAuthorizer defines the secondary port for the external payment
// authorization flow. The production implementation hands the gateway order
// to the client-side gateway SDK and yields the resulting credentials.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, apiKey string, order domain.CreatedOrder) (*domain.PaymentCredentials, error)
}
