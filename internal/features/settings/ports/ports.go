package ports

import (
	"context"

	"pharmacart/internal/features/settings/domain"
)

// Provider defines the secondary port for fetching delivery settings
// from the pharmacy backend.
type Provider interface {
	Fetch(ctx context.Context) (*domain.Settings, error)
}

// Service defines the primary port: a cached view over Provider.
type Service interface {
	// Get returns the cached settings, fetching them on first use.
	Get(ctx context.Context) (*domain.Settings, error)
	// Refresh discards the cache and fetches fresh settings.
	Refresh(ctx context.Context) (*domain.Settings, error)
}
