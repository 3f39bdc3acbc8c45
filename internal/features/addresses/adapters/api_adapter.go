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
	"pharmacart/internal/features/addresses/domain"
)

// APIAdapter implements ports.Provider against the pharmacy backend.
// All endpoints are bearer-token authenticated.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates an address adapter with a read-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

// wire structs

type wireAddress struct {
	ID            string `json:"id"`
	HouseNo       string `json:"houseNo"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Type          string `json:"type"`
}

type addressListResponse struct {
	Success   bool          `json:"success"`
	Addresses []wireAddress `json:"addresses"`
}

type addressResponse struct {
	Success bool        `json:"success"`
	Address wireAddress `json:"address"`
}

type availabilityResponse struct {
	Success   bool `json:"success"`
	Available bool `json:"available"`
}

func toWire(a domain.Address) wireAddress {
	return wireAddress{
		ID:            a.ID,
		HouseNo:       a.HouseNo,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		Pincode:       a.Pincode,
		Type:          string(a.Type),
	}
}

func toDomain(w wireAddress) domain.Address {
	return domain.Address{
		ID:            w.ID,
		HouseNo:       w.HouseNo,
		StreetAddress: w.StreetAddress,
		City:          w.City,
		State:         w.State,
		Pincode:       w.Pincode,
		Type:          domain.AddressType(w.Type),
	}
}

func (a *APIAdapter) do(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperr.Network(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("address endpoint %s returned status: %d", path, resp.StatusCode)
	}

	return resp, nil
}

// List retrieves the user's saved addresses.
func (a *APIAdapter) List(ctx context.Context) ([]domain.Address, error) {
	resp, err := a.do(ctx, http.MethodGet, "/api/v1/get-my-address", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body addressListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode address list: %w", err)
	}

	addresses := make([]domain.Address, 0, len(body.Addresses))
	for _, w := range body.Addresses {
		addresses = append(addresses, toDomain(w))
	}
	return addresses, nil
}

// Create saves a new address and returns it with the backend id.
func (a *APIAdapter) Create(ctx context.Context, address domain.Address) (*domain.Address, error) {
	resp, err := a.do(ctx, http.MethodPost, "/api/v1/add-new-address", toWire(address))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body addressResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode created address: %w", err)
	}

	created := toDomain(body.Address)
	return &created, nil
}

// Update replaces an existing address.
func (a *APIAdapter) Update(ctx context.Context, address domain.Address) error {
	resp, err := a.do(ctx, http.MethodPost, "/api/v1/update-my-address/"+address.ID, toWire(address))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Delete removes an address by id.
func (a *APIAdapter) Delete(ctx context.Context, id string) error {
	resp, err := a.do(ctx, http.MethodDelete, "/api/v1/delete-my-address/"+id, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// CheckServiceability reports whether the given city is deliverable.
func (a *APIAdapter) CheckServiceability(ctx context.Context, city string) (bool, error) {
	resp, err := a.do(ctx, http.MethodPost, "/api/v1/check_area_availability", map[string]string{"city": city})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var body availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode availability response: %w", err)
	}

	return body.Available, nil
}
