package ports

import (
	"context"

	"pharmacart/internal/features/addresses/domain"
)

// Provider defines the secondary port for address CRUD and serviceability
// against the pharmacy backend.
type Provider interface {
	// List retrieves the user's saved addresses.
	List(ctx context.Context) ([]domain.Address, error)
	// Create saves a new address and returns it with the backend id.
	Create(ctx context.Context, address domain.Address) (*domain.Address, error)
	// Update replaces an existing address.
	Update(ctx context.Context, address domain.Address) error
	// Delete removes an address by id.
	Delete(ctx context.Context, id string) error
	// CheckServiceability reports whether the given city is deliverable.
	CheckServiceability(ctx context.Context, city string) (bool, error)
}

// Service defines the primary port for address operations, adding client-side
// validation and list retry on top of Provider.
type Service interface {
	List(ctx context.Context) ([]domain.Address, error)
	Create(ctx context.Context, address domain.Address) (*domain.Address, error)
	Update(ctx context.Context, address domain.Address) error
	Delete(ctx context.Context, id string) error
	CheckServiceability(ctx context.Context, city string) (bool, error)
}
