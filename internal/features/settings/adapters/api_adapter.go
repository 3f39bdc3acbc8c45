package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/httpclient"
	"pharmacart/internal/features/settings/domain"
)

// APIAdapter implements ports.Provider against the pharmacy backend.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates a settings adapter with a read-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

// settingsResponse mirrors the backend wire format.
type settingsResponse struct {
	Success  bool `json:"success"`
	Settings struct {
		ShippingThreshold float64 `json:"shippingThreshold"`
		ShippingCharge    float64 `json:"shippingCharge"`
		CODFee            float64 `json:"codFee"`
	} `json:"settings"`
}

// Fetch retrieves delivery settings from the backend.
func (a *APIAdapter) Fetch(ctx context.Context) (*domain.Settings, error) {
	url := fmt.Sprintf("%s/api/v1/fetch-settings", a.baseURL)

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
		return nil, fmt.Errorf("settings endpoint returned status: %d", resp.StatusCode)
	}

	var body settingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode settings response: %w", err)
	}

	return &domain.Settings{
		ShippingThreshold: body.Settings.ShippingThreshold,
		ShippingCharge:    body.Settings.ShippingCharge,
		CODFee:            body.Settings.CODFee,
	}, nil
}
