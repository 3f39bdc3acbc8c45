package domain

import (
	addressdomain "pharmacart/internal/features/addresses/domain"
	cartdomain "pharmacart/internal/features/cart/domain"
	pricingdomain "pharmacart/internal/features/pricing/domain"
)

// Step is the current position in the linear checkout flow.
// Transitions only move forward; there is no backward transition.
type Step string

const (
	// StepAddress is the initial state: picking a delivery address.
	StepAddress Step = "ADDRESS_SELECTION"
	// StepPatientInfo collects the patient details for the prescription.
	StepPatientInfo Step = "PATIENT_INFO"
	// StepOrderSummary shows the final breakdown and takes the confirm action.
	StepOrderSummary Step = "ORDER_SUMMARY"
	// StepSuccess is the terminal state after a completed order.
	StepSuccess Step = "SUCCESS"
	// StepFailed is the terminal state after a declined or cancelled payment.
	StepFailed Step = "FAILED"
)

// PatientInfo holds the prescription holder's details for one checkout
// session. Required fields are enforced before the flow may advance.
type PatientInfo struct {
	PatientName       string `json:"patient_name" validate:"required"`
	PatientPhone      string `json:"patient_phone" validate:"required,len=10,numeric"`
	HospitalName      string `json:"hospital_name" validate:"required"`
	DoctorName        string `json:"doctor_name" validate:"required"`
	PrescriptionNotes string `json:"prescription_notes,omitempty"`
}

// OrderDraft is the in-memory accumulation of checkout inputs. It exists
// only for the lifetime of one session and is discarded on completion or
// abandonment; it never survives a restart.
type OrderDraft struct {
	Address        *addressdomain.Address      `json:"address,omitempty"`
	Patient        *PatientInfo                `json:"patient,omitempty"`
	Snapshot       cartdomain.Snapshot         `json:"snapshot"`
	Payment        pricingdomain.PaymentOption `json:"payment,omitempty"`
	PrescriptionID string                      `json:"prescription_id,omitempty"`
}

// CreatedOrder is the backend's answer to order creation. Gateway fields are
// only present for online payments.
type CreatedOrder struct {
	// OrderID is the pharmacy backend's order identifier.
	OrderID string `json:"order_id"`
	// GatewayOrderID is the payment gateway's order identifier.
	GatewayOrderID string `json:"gateway_order_id,omitempty"`
	// Amount is the payable amount registered with the gateway.
	Amount float64 `json:"amount,omitempty"`
}

// PaymentCredentials are returned by the external payment authorization flow.
type PaymentCredentials struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature"`
}

// Complete reports whether all credential fields are present.
func (c PaymentCredentials) Complete() bool {
	return c.PaymentID != "" && c.OrderID != "" && c.Signature != ""
}

// RedirectSuccess is the verification response redirect value that denotes a
// successful payment.
const RedirectSuccess = "success_screen"

// VerificationResult is the payment verification endpoint's response.
type VerificationResult struct {
	Redirect string `json:"redirect"`
	Message  string `json:"message"`
}

// Result reports the outcome of a confirm action.
type Result struct {
	// Step is the terminal step reached (SUCCESS or FAILED).
	Step Step `json:"step"`
	// OrderID is the created order's identifier, when one was created.
	OrderID string `json:"order_id,omitempty"`
	// Message carries the failure reason on the FAILED path.
	Message string `json:"message,omitempty"`
}
