package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmacart/internal/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) func() string {
	return func() string { return token }
}

func TestAPIAdapter_GetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/get-product/med-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"product":{
			"_id":"med-1","title":"Paracetamol 500","saltComposition":"Paracetamol (500mg)",
			"companyName":"Acme Pharma","salePrice":80,"price":100,
			"imageUrl":"https://cdn/p.jpg","codAvailable":true,"inStock":true}}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken("tok"))
	product, err := adapter.GetProduct(context.Background(), "med-1")

	require.NoError(t, err)
	assert.Equal(t, "med-1", product.ID)
	assert.Equal(t, "Paracetamol (500mg)", product.SaltComposition)
	assert.Equal(t, 80.0, product.SalePrice)
	assert.Equal(t, 100.0, product.ListPrice)
	assert.True(t, product.CODEligible)
}

func TestAPIAdapter_GetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"product not found"}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken(""))
	_, err := adapter.GetProduct(context.Background(), "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestAPIAdapter_SimilarBySalt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medicne/by-salt", r.URL.Path)
		assert.Equal(t, "Paracetamol (500mg)", r.URL.Query().Get("salt"))
		w.Write([]byte(`{"success":true,"products":[
			{"_id":"med-1","title":"Paracetamol 500"},
			{"_id":"med-9","title":"Calpol 500"}]}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken(""))
	products, err := adapter.SimilarBySalt(context.Background(), "Paracetamol (500mg)")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "med-9", products[1].ID)
}

func TestAPIAdapter_GetProduct_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken("stale"))
	_, err := adapter.GetProduct(context.Background(), "med-1")

	assert.ErrorIs(t, err, apperr.SessionExpired())
}
