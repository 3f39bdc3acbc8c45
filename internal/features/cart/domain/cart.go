package domain

// LineItem represents a single product entry in the cart.
// The cart holds at most one line item per product id; adding an existing
// product increments its quantity instead of duplicating the line.
type LineItem struct {
	// ProductID is the unique identifier of the medicine.
	ProductID string `json:"product_id"`
	// Title is the display name of the medicine.
	Title string `json:"title"`
	// Quantity is the number of units; always a positive integer while present.
	Quantity int `json:"quantity"`
	// UnitSalePrice is the customer-facing per-unit price.
	UnitSalePrice float64 `json:"unit_sale_price"`
	// UnitListPrice is the per-unit MRP before the seller discount.
	UnitListPrice float64 `json:"unit_list_price"`
	// ImageURL points to the product image.
	ImageURL string `json:"image_url"`
	// CODEligible reports whether this item may be paid for on delivery.
	CODEligible bool `json:"cod_eligible"`
	// CompanyName is the manufacturer name.
	CompanyName string `json:"company_name"`
}

// Snapshot is a read-only copy of the cart taken at a point in time.
// Checkout captures one on entry; later cart mutations do not affect it.
type Snapshot struct {
	// Items is a defensive copy of the cart line items.
	Items []LineItem `json:"items"`
	// Count is the number of distinct line items.
	Count int `json:"count"`
}

// CODEligible reports whether every item in the snapshot allows cash on delivery.
func (s Snapshot) CODEligible() bool {
	for _, item := range s.Items {
		if !item.CODEligible {
			return false
		}
	}
	return true
}

// Empty reports whether the snapshot holds no items.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}
