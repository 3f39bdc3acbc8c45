package ports

import (
	"context"

	"pharmacart/internal/features/catalog/domain"
)

// Provider defines the secondary port for product lookups against the
// pharmacy backend.
type Provider interface {
	// GetProduct fetches one product by id.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	// SimilarBySalt lists products sharing the given salt composition.
	SimilarBySalt(ctx context.Context, salt string) ([]domain.Product, error)
}
