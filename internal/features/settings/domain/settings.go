package domain

// Settings holds the backend-owned delivery pricing configuration.
// Fetched once and cached; read-only for this service.
type Settings struct {
	// ShippingThreshold is the sale total above which delivery is free
	// (strictly greater-than comparison).
	ShippingThreshold float64 `json:"shipping_threshold"`
	// ShippingCharge is the flat delivery fee below the threshold.
	ShippingCharge float64 `json:"shipping_charge"`
	// CODFee is the surcharge applied to cash-on-delivery orders.
	CODFee float64 `json:"cod_fee"`
}
