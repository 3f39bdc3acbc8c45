package service

import (
	"context"
	"testing"

	"pharmacart/internal/features/catalog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	products map[string]*domain.Product
	bySalt   map[string][]domain.Product
	calls    int
}

func (f *fakeProvider) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return f.products[id], nil
}

func (f *fakeProvider) SimilarBySalt(ctx context.Context, salt string) ([]domain.Product, error) {
	f.calls++
	return f.bySalt[salt], nil
}

func TestCatalogService_Similar_FiltersSelf(t *testing.T) {
	provider := &fakeProvider{
		bySalt: map[string][]domain.Product{
			"Paracetamol (500mg)": {
				{ID: "med-1", Title: "Paracetamol 500"},
				{ID: "med-9", Title: "Calpol 500"},
			},
		},
	}
	svc := NewCatalogService(provider)

	similar, err := svc.Similar(context.Background(), domain.Product{
		ID: "med-1", SaltComposition: "Paracetamol (500mg)",
	})

	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "med-9", similar[0].ID)
}

func TestCatalogService_Similar_NoSalt(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewCatalogService(provider)

	similar, err := svc.Similar(context.Background(), domain.Product{ID: "med-1"})

	require.NoError(t, err)
	assert.Empty(t, similar)
	assert.Equal(t, 0, provider.calls)
}

func TestProduct_ToLineItem(t *testing.T) {
	product := domain.Product{
		ID: "med-1", Title: "Paracetamol 500", SalePrice: 80, ListPrice: 100,
		ImageURL: "https://cdn/p.jpg", CODEligible: true, CompanyName: "Acme Pharma",
	}

	line := product.ToLineItem(3)

	assert.Equal(t, "med-1", line.ProductID)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 80.0, line.UnitSalePrice)
	assert.Equal(t, 100.0, line.UnitListPrice)
	assert.True(t, line.CODEligible)
}
