package domain

import (
	"testing"

	cartdomain "pharmacart/internal/features/cart/domain"
	coupondomain "pharmacart/internal/features/coupons/domain"
	settingsdomain "pharmacart/internal/features/settings/domain"

	"github.com/stretchr/testify/assert"
)

func lineItem(list, sale float64, qty int) cartdomain.LineItem {
	return cartdomain.LineItem{ProductID: "p", UnitListPrice: list, UnitSalePrice: sale, Quantity: qty}
}

func TestCompute_Deterministic(t *testing.T) {
	items := []cartdomain.LineItem{lineItem(30, 25, 2), lineItem(45, 40, 1)}
	settings := settingsdomain.Settings{ShippingThreshold: 500, ShippingCharge: 40, CODFee: 20}
	applied := &coupondomain.Applied{Code: "SAVE10", Discount: 10}

	first := Compute(items, settings, applied, PaymentOnline)
	second := Compute(items, settings, applied, PaymentOnline)

	assert.Equal(t, first, second)
}

func TestCompute_Totals(t *testing.T) {
	items := []cartdomain.LineItem{lineItem(30, 25, 2), lineItem(45, 40, 1)}
	settings := settingsdomain.Settings{ShippingThreshold: 500, ShippingCharge: 40, CODFee: 20}

	b := Compute(items, settings, nil, PaymentOnline)

	assert.Equal(t, 105.0, b.Subtotal)
	assert.Equal(t, 90.0, b.SaleTotal)
	assert.Equal(t, 15.0, b.SellerDiscount)
	assert.Equal(t, 40.0, b.DeliveryFee)
	assert.Equal(t, 0.0, b.CODSurcharge)
	assert.Equal(t, 130.0, b.GrandTotal)
	assert.Equal(t, 15.0, b.TotalSavings)
}

func TestCompute_DeliveryFeeThreshold(t *testing.T) {
	settings := settingsdomain.Settings{ShippingThreshold: 500, ShippingCharge: 40}

	tests := []struct {
		name      string
		saleTotal float64
		wantFee   float64
	}{
		{"below threshold", 499, 40},
		{"exactly at threshold", 500, 40},
		{"just above threshold", 501, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []cartdomain.LineItem{lineItem(tt.saleTotal+100, tt.saleTotal, 1)}
			b := Compute(items, settings, nil, PaymentOnline)
			assert.Equal(t, tt.wantFee, b.DeliveryFee)
		})
	}
}

func TestCompute_CODVersusOnline(t *testing.T) {
	// Sale total 160 > threshold 100, so delivery is free.
	items := []cartdomain.LineItem{lineItem(100, 80, 2)}
	settings := settingsdomain.Settings{ShippingThreshold: 100, ShippingCharge: 30, CODFee: 20}

	online := Compute(items, settings, nil, PaymentOnline)
	assert.Equal(t, 160.0, online.GrandTotal)
	assert.Equal(t, 0.0, online.DeliveryFee)

	cod := Compute(items, settings, nil, PaymentCOD)
	assert.Equal(t, 180.0, cod.GrandTotal)
	assert.Equal(t, 20.0, cod.CODSurcharge)
}

func TestCompute_CouponDiscount(t *testing.T) {
	items := []cartdomain.LineItem{lineItem(100, 80, 2)}
	settings := settingsdomain.Settings{ShippingThreshold: 100, ShippingCharge: 30}

	b := Compute(items, settings, &coupondomain.Applied{Code: "SAVE25", Discount: 25}, PaymentOnline)

	assert.Equal(t, 25.0, b.CouponDiscount)
	assert.Equal(t, 135.0, b.GrandTotal)
	assert.Equal(t, 65.0, b.TotalSavings)
}

func TestCompute_EmptyCart(t *testing.T) {
	settings := settingsdomain.Settings{ShippingThreshold: 500, ShippingCharge: 40}

	b := Compute(nil, settings, nil, PaymentOnline)

	assert.Equal(t, 0.0, b.Subtotal)
	assert.Equal(t, 0.0, b.SaleTotal)
	// A zero sale total does not beat the threshold, so the flat fee applies.
	assert.Equal(t, 40.0, b.DeliveryFee)
	assert.Equal(t, 40.0, b.GrandTotal)
}

func TestCompute_ZeroThresholdEmptyCart(t *testing.T) {
	settings := settingsdomain.Settings{ShippingThreshold: 0, ShippingCharge: 40}

	b := Compute(nil, settings, nil, PaymentOnline)

	// 0 > 0 is false, so the fee still applies at a zero threshold.
	assert.Equal(t, 40.0, b.DeliveryFee)
}
