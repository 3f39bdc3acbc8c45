package service

import (
	"context"
	"fmt"
	"sync"

	"pharmacart/internal/features/settings/domain"
	"pharmacart/internal/features/settings/ports"
)

// SettingsService caches the delivery settings after the first successful
// fetch. Failed fetches are not cached, so the next Get retries.
type SettingsService struct {
	provider ports.Provider

	mu     sync.Mutex
	cached *domain.Settings
}

// NewSettingsService creates a SettingsService over the given provider.
func NewSettingsService(provider ports.Provider) *SettingsService {
	return &SettingsService{provider: provider}
}

// Get returns the cached settings, fetching them on first use.
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	settings, err := s.provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch settings: %w", err)
	}

	s.cached = settings
	return settings, nil
}

// Refresh discards the cache and fetches fresh settings.
func (s *SettingsService) Refresh(ctx context.Context) (*domain.Settings, error) {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return s.Get(ctx)
}
