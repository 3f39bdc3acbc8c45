package ports

import (
	"context"

	"pharmacart/internal/features/cart/domain"
)

// Store defines the primary port for cart mutations and reads.
// Mutations never fail from the caller's perspective: the in-memory change
// always applies, and persistence failures are logged and swallowed.
type Store interface {
	// AddItems merges incoming items into the cart, incrementing the quantity
	// of lines that share a product id and appending the rest.
	AddItems(ctx context.Context, items []domain.LineItem)
	// UpdateQuantity sets a line's quantity; 0 removes the line.
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	// RemoveItem removes a line unconditionally.
	RemoveItem(ctx context.Context, productID string)
	// ReplaceAll swaps the entire item list (hydration, post-order clear).
	ReplaceAll(ctx context.Context, items []domain.LineItem)
	// Items returns a copy of the current line items.
	Items() []domain.LineItem
	// Count returns the number of distinct line items.
	Count() int
	// Snapshot captures the current cart contents.
	Snapshot() domain.Snapshot
	// Subscribe registers a callback invoked after every mutation.
	Subscribe(fn func())
}

// Repository defines the secondary port for durable cart persistence.
type Repository interface {
	// Save persists the full item list.
	Save(ctx context.Context, items []domain.LineItem) error
	// Load retrieves the persisted item list; an empty cart yields an empty slice.
	Load(ctx context.Context) ([]domain.LineItem, error)
}
