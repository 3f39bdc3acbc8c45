package domain

// AddressType classifies a saved delivery address.
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

// Address is a backend-owned delivery address; the client holds a read cache
// and a per-checkout "selected address" reference only.
type Address struct {
	// ID is the backend identifier.
	ID string `json:"id"`
	// HouseNo is the house or flat number.
	HouseNo string `json:"house_no" validate:"required"`
	// StreetAddress is the street line.
	StreetAddress string `json:"street_address" validate:"required"`
	// City is the delivery city; also used for serviceability checks.
	City string `json:"city" validate:"required"`
	// State is the state or province.
	State string `json:"state" validate:"required"`
	// Pincode is the 6-digit postal code.
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	// Type is one of home, work, other.
	Type AddressType `json:"type" validate:"required,oneof=home work other"`
}

// Complete reports whether the address satisfies the checkout precondition:
// street and city must both be present.
func (a Address) Complete() bool {
	return a.StreetAddress != "" && a.City != ""
}
