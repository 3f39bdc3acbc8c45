package domain

import (
	cartdomain "pharmacart/internal/features/cart/domain"
)

// Product is a medicine listing as served by the pharmacy backend.
type Product struct {
	// ID is the backend product identifier.
	ID string `json:"id"`
	// Title is the display name of the medicine.
	Title string `json:"title"`
	// SaltComposition is the active ingredient line; similar products share it.
	SaltComposition string `json:"salt_composition"`
	// CompanyName is the manufacturer name.
	CompanyName string `json:"company_name"`
	// SalePrice is the customer-facing per-unit price.
	SalePrice float64 `json:"sale_price"`
	// ListPrice is the per-unit MRP before the seller discount.
	ListPrice float64 `json:"list_price"`
	// ImageURL points to the primary product image.
	ImageURL string `json:"image_url"`
	// Description is the long-form product text.
	Description string `json:"description,omitempty"`
	// CODEligible reports whether this item may be paid for on delivery.
	CODEligible bool `json:"cod_eligible"`
	// InStock reports current availability.
	InStock bool `json:"in_stock"`
}

// ToLineItem converts the product into a cart line with the given quantity.
func (p Product) ToLineItem(quantity int) cartdomain.LineItem {
	return cartdomain.LineItem{
		ProductID:     p.ID,
		Title:         p.Title,
		Quantity:      quantity,
		UnitSalePrice: p.SalePrice,
		UnitListPrice: p.ListPrice,
		ImageURL:      p.ImageURL,
		CODEligible:   p.CODEligible,
		CompanyName:   p.CompanyName,
	}
}
