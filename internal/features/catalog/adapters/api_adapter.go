package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/httpclient"
	"pharmacart/internal/features/catalog/domain"
)

// APIAdapter implements ports.Provider against the pharmacy backend.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates a catalog adapter with a read-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

// wire structs

type wireProduct struct {
	ID              string  `json:"_id"`
	Title           string  `json:"title"`
	SaltComposition string  `json:"saltComposition"`
	CompanyName     string  `json:"companyName"`
	SalePrice       float64 `json:"salePrice"`
	ListPrice       float64 `json:"price"`
	ImageURL        string  `json:"imageUrl"`
	Description     string  `json:"description"`
	CODEligible     bool    `json:"codAvailable"`
	InStock         bool    `json:"inStock"`
}

func (w wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:              w.ID,
		Title:           w.Title,
		SaltComposition: w.SaltComposition,
		CompanyName:     w.CompanyName,
		SalePrice:       w.SalePrice,
		ListPrice:       w.ListPrice,
		ImageURL:        w.ImageURL,
		Description:     w.Description,
		CODEligible:     w.CODEligible,
		InStock:         w.InStock,
	}
}

type productResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Product wireProduct `json:"product"`
}

type similarResponse struct {
	Success  bool          `json:"success"`
	Products []wireProduct `json:"products"`
}

// GetProduct fetches one product by id.
func (a *APIAdapter) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v1/get-product/%s", a.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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
		return nil, fmt.Errorf("product endpoint returned status: %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("product lookup rejected: %s", body.Message)
	}

	product := body.Product.toDomain()
	return &product, nil
}

// SimilarBySalt lists products sharing the given salt composition.
// The backend path spelling is historical and must be preserved.
func (a *APIAdapter) SimilarBySalt(ctx context.Context, salt string) ([]domain.Product, error) {
	reqURL := fmt.Sprintf("%s/medicne/by-salt?salt=%s", a.baseURL, url.QueryEscape(salt))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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
		return nil, fmt.Errorf("similar products endpoint returned status: %d", resp.StatusCode)
	}

	var body similarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode similar products response: %w", err)
	}

	products := make([]domain.Product, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, p.toDomain())
	}
	return products, nil
}
