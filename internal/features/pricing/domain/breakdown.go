package domain

import (
	cartdomain "pharmacart/internal/features/cart/domain"
	coupondomain "pharmacart/internal/features/coupons/domain"
	settingsdomain "pharmacart/internal/features/settings/domain"
)

// PaymentOption selects how the order is paid.
type PaymentOption string

const (
	// PaymentCOD is cash on delivery, subject to a fixed surcharge.
	PaymentCOD PaymentOption = "cod"
	// PaymentOnline is prepaid via the payment gateway.
	PaymentOnline PaymentOption = "online"
)

// Breakdown captures the full price decomposition of a cart.
type Breakdown struct {
	// Subtotal is the list (MRP) total: Σ unit list price × quantity.
	Subtotal float64 `json:"subtotal"`
	// SaleTotal is the customer-facing total: Σ unit sale price × quantity.
	SaleTotal float64 `json:"sale_total"`
	// SellerDiscount is the merchant markdown: subtotal − sale total.
	SellerDiscount float64 `json:"seller_discount"`
	// DeliveryFee is 0 when the sale total strictly exceeds the shipping
	// threshold, else the flat shipping charge.
	DeliveryFee float64 `json:"delivery_fee"`
	// CODSurcharge applies only to cash-on-delivery orders.
	CODSurcharge float64 `json:"cod_surcharge"`
	// CouponDiscount is the applied coupon's resolved discount, or 0.
	CouponDiscount float64 `json:"coupon_discount"`
	// GrandTotal is the final payable amount.
	GrandTotal float64 `json:"grand_total"`
	// TotalSavings is sellerDiscount + couponDiscount.
	TotalSavings float64 `json:"total_savings"`
}

// Compute derives the price breakdown for the given cart composition.
// Pure and deterministic; safe to re-run on every state change.
//
// The delivery-fee comparison is against the sale total (subtotal minus
// seller discount), using strict greater-than: a sale total exactly at the
// threshold still pays the shipping charge. An empty cart is still charged
// the flat fee unless the threshold is negative.
func Compute(items []cartdomain.LineItem, settings settingsdomain.Settings, applied *coupondomain.Applied, payment PaymentOption) Breakdown {
	var b Breakdown

	for _, item := range items {
		qty := float64(item.Quantity)
		b.Subtotal += item.UnitListPrice * qty
		b.SaleTotal += item.UnitSalePrice * qty
	}
	b.SellerDiscount = b.Subtotal - b.SaleTotal

	if b.Subtotal-b.SellerDiscount > settings.ShippingThreshold {
		b.DeliveryFee = 0
	} else {
		b.DeliveryFee = settings.ShippingCharge
	}

	if payment == PaymentCOD {
		b.CODSurcharge = settings.CODFee
	}

	if applied != nil {
		b.CouponDiscount = applied.Discount
	}

	b.GrandTotal = b.SaleTotal - b.CouponDiscount + b.DeliveryFee + b.CODSurcharge
	b.TotalSavings = b.Subtotal - b.SaleTotal + b.CouponDiscount

	return b
}
