package domain

// Coupon represents an offer listed by the backend.
type Coupon struct {
	// Code is the coupon code the user applies.
	Code string `json:"code"`
	// Theme is a display hint for the coupon card.
	Theme string `json:"theme"`
	// PercentageOff is the advertised discount percentage, when applicable.
	PercentageOff float64 `json:"percentage_off,omitempty"`
	// MaxDiscount caps the discount amount, when applicable.
	MaxDiscount float64 `json:"max_discount,omitempty"`
	// MinOrderValue is the minimum order total for eligibility.
	// Display-only on the client; the server is authoritative.
	MinOrderValue float64 `json:"min_order_value"`
	// Description is the human-readable offer text.
	Description string `json:"description"`
}

// ValidationResult is the backend's answer to a coupon validation request.
type ValidationResult struct {
	// Success reports whether the coupon applies to the given cart.
	Success bool `json:"success"`
	// Discount is the resolved discount amount.
	Discount float64 `json:"discount"`
	// GrandTotal is the server-computed total after the discount.
	GrandTotal float64 `json:"grand_total"`
	// Message carries the rejection reason when Success is false.
	Message string `json:"message,omitempty"`
}

// Applied is a successfully validated coupon attached to the cart.
type Applied struct {
	Code       string  `json:"code"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grand_total"`
}

// State is the lifecycle position of the coupon on the cart.
type State string

const (
	// StateUnapplied means no coupon is attached.
	StateUnapplied State = "UNAPPLIED"
	// StatePending means a validation round trip is in flight.
	StatePending State = "PENDING"
	// StateApplied means the coupon validated and its discount is active.
	StateApplied State = "APPLIED"
	// StateRejected means the last validation failed; no discount is active.
	StateRejected State = "REJECTED"
)
