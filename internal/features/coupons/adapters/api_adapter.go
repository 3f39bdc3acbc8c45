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
	cartdomain "pharmacart/internal/features/cart/domain"
	"pharmacart/internal/features/coupons/domain"
)

// APIAdapter implements ports.Provider against the pharmacy backend.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates a coupon adapter with a read-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

// wire structs

type couponListResponse struct {
	Success bool         `json:"success"`
	Coupons []wireCoupon `json:"coupons"`
}

type wireCoupon struct {
	Code          string  `json:"code"`
	Theme         string  `json:"theme"`
	PercentageOff float64 `json:"percentageOff"`
	MaxDiscount   float64 `json:"maxDiscount"`
	MinOrderValue float64 `json:"minOrderValue"`
	Description   string  `json:"description"`
}

type validateRequest struct {
	CouponCode string         `json:"couponCode"`
	CartItems  []wireCartItem `json:"cartItems"`
	TotalPrice float64        `json:"totalPrice"`
}

type wireCartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type validateResponse struct {
	Success    bool    `json:"success"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grandTotal"`
	Message    string  `json:"message"`
}

// List retrieves the available coupons.
func (a *APIAdapter) List(ctx context.Context) ([]domain.Coupon, error) {
	url := fmt.Sprintf("%s/api/v1/check_coupons", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coupon list endpoint returned status: %d", resp.StatusCode)
	}

	var body couponListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode coupon list: %w", err)
	}

	coupons := make([]domain.Coupon, 0, len(body.Coupons))
	for _, c := range body.Coupons {
		coupons = append(coupons, domain.Coupon{
			Code:          c.Code,
			Theme:         c.Theme,
			PercentageOff: c.PercentageOff,
			MaxDiscount:   c.MaxDiscount,
			MinOrderValue: c.MinOrderValue,
			Description:   c.Description,
		})
	}
	return coupons, nil
}

// Validate asks the backend whether code applies to the given cart.
// Exactly one round trip; the caller treats any error as "not applied".
func (a *APIAdapter) Validate(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
	url := fmt.Sprintf("%s/api/v1/check-coupon", a.baseURL)

	payload := validateRequest{
		CouponCode: code,
		CartItems:  make([]wireCartItem, 0, len(items)),
		TotalPrice: total,
	}
	for _, item := range items {
		payload.CartItems = append(payload.CartItems, wireCartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitSalePrice,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coupon request: %w", err)
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
		return nil, fmt.Errorf("coupon validation endpoint returned status: %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode coupon validation response: %w", err)
	}

	return &domain.ValidationResult{
		Success:    out.Success,
		Discount:   out.Discount,
		GrandTotal: out.GrandTotal,
		Message:    out.Message,
	}, nil
}
