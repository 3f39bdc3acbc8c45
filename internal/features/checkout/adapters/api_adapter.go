package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/httpclient"
	"pharmacart/internal/features/checkout/domain"
	pricingdomain "pharmacart/internal/features/pricing/domain"
)

// APIAdapter implements ports.OrderGateway against the pharmacy backend.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates an order gateway adapter with a write-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

// wire structs

type wireOrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type wireAddress struct {
	HouseNo       string `json:"houseNo"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Type          string `json:"type"`
}

type wirePatient struct {
	PatientName       string `json:"patientName"`
	PatientPhone      string `json:"patientPhone"`
	HospitalName      string `json:"hospitalName"`
	DoctorName        string `json:"doctorName"`
	PrescriptionNotes string `json:"prescriptionNotes,omitempty"`
}

type createOrderRequest struct {
	PatientInfo    wirePatient     `json:"patientInfo"`
	Address        wireAddress     `json:"address"`
	CartItems      []wireOrderItem `json:"cartItems"`
	PaymentOption  string          `json:"paymentOption"`
	PrescriptionID string          `json:"prescriptionId"`
	TotalPrice     float64         `json:"totalPrice"`
	DeliveryFee    float64         `json:"deliveryFee"`
	CODFee         float64         `json:"codFee"`
	CouponDiscount float64         `json:"couponDiscount"`
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	// SendOrder carries the gateway registration for online payments.
	SendOrder struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	} `json:"sendOrder"`
}

type apiKeyResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

type verifyRequest struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

type verifyResponse struct {
	Redirect string `json:"redirect"`
	Message  string `json:"message"`
}

// CreateOrder submits the draft with its breakdown to the backend. The
// idempotency key is repeated verbatim on retries of the same session so the
// server can collapse duplicates.
func (a *APIAdapter) CreateOrder(ctx context.Context, draft domain.OrderDraft, breakdown pricingdomain.Breakdown, idempotencyKey string) (*domain.CreatedOrder, error) {
	url := fmt.Sprintf("%s/api/v1/make-a-order", a.baseURL)

	payload := createOrderRequest{
		PaymentOption:  string(draft.Payment),
		PrescriptionID: draft.PrescriptionID,
		TotalPrice:     breakdown.GrandTotal,
		DeliveryFee:    breakdown.DeliveryFee,
		CODFee:         breakdown.CODSurcharge,
		CouponDiscount: breakdown.CouponDiscount,
	}
	if draft.Patient != nil {
		payload.PatientInfo = wirePatient{
			PatientName:       draft.Patient.PatientName,
			PatientPhone:      draft.Patient.PatientPhone,
			HospitalName:      draft.Patient.HospitalName,
			DoctorName:        draft.Patient.DoctorName,
			PrescriptionNotes: draft.Patient.PrescriptionNotes,
		}
	}
	if draft.Address != nil {
		payload.Address = wireAddress{
			HouseNo:       draft.Address.HouseNo,
			StreetAddress: draft.Address.StreetAddress,
			City:          draft.Address.City,
			State:         draft.Address.State,
			Pincode:       draft.Address.Pincode,
			Type:          string(draft.Address.Type),
		}
	}
	for _, item := range draft.Snapshot.Items {
		payload.CartItems = append(payload.CartItems, wireOrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.UnitSalePrice,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order endpoint returned status: %d", resp.StatusCode)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("order creation rejected: %s", out.Message)
	}

	return &domain.CreatedOrder{
		OrderID:        out.OrderID,
		GatewayOrderID: out.SendOrder.ID,
		Amount:         out.SendOrder.Amount,
	}, nil
}

// GatewayKey fetches the payment gateway's public API key.
func (a *APIAdapter) GatewayKey(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/api/v1/get/api/key", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api key endpoint returned status: %d", resp.StatusCode)
	}

	var out apiKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode api key response: %w", err)
	}
	if !out.Success || out.Key == "" {
		return "", fmt.Errorf("api key endpoint returned no key")
	}
	return out.Key, nil
}

// VerifyPayment submits payment credentials for verification.
func (a *APIAdapter) VerifyPayment(ctx context.Context, creds domain.PaymentCredentials) (*domain.VerificationResult, error) {
	url := fmt.Sprintf("%s/api/v1/verify-payment", a.baseURL)

	body, err := json.Marshal(verifyRequest{
		PaymentID: creds.PaymentID,
		OrderID:   creds.OrderID,
		Signature: creds.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification endpoint returned status: %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return &domain.VerificationResult{Redirect: out.Redirect, Message: out.Message}, nil
}
