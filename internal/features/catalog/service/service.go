package service

import (
	"context"
	"fmt"

	"pharmacart/internal/features/catalog/domain"
	"pharmacart/internal/features/catalog/ports"
)

// CatalogService is a thin orchestration layer over the product provider.
type CatalogService struct {
	provider ports.Provider
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(provider ports.Provider) *CatalogService {
	return &CatalogService{provider: provider}
}

// GetProduct fetches one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.provider.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch product: %w", err)
	}
	return product, nil
}

// Similar lists alternatives to the given product, matched on its salt
// composition; the product itself is filtered out of the result.
func (s *CatalogService) Similar(ctx context.Context, product domain.Product) ([]domain.Product, error) {
	if product.SaltComposition == "" {
		return []domain.Product{}, nil
	}
	matches, err := s.provider.SimilarBySalt(ctx, product.SaltComposition)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch similar products: %w", err)
	}

	similar := make([]domain.Product, 0, len(matches))
	for _, m := range matches {
		if m.ID == product.ID {
			continue
		}
		similar = append(similar, m)
	}
	return similar, nil
}
