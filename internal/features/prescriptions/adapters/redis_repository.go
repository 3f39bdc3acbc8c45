package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pharmacart/internal/core/cache"
)

const pendingPrescriptionsKey = "pending_prescriptions"

// RedisPendingRepository implements ports.PendingRepository over the local
// durable store, one JSON blob under a fixed key.
type RedisPendingRepository struct {
	store cache.Store
}

// NewRedisPendingRepository creates a new RedisPendingRepository.
func NewRedisPendingRepository(s cache.Store) *RedisPendingRepository {
	return &RedisPendingRepository{store: s}
}

// Save persists the pending image reference list.
func (r *RedisPendingRepository) Save(ctx context.Context, fileNames []string) error {
	data, err := json.Marshal(fileNames)
	if err != nil {
		return fmt.Errorf("failed to marshal pending prescriptions: %w", err)
	}
	if err := r.store.Set(ctx, pendingPrescriptionsKey, data, 0); err != nil {
		return fmt.Errorf("failed to save pending prescriptions: %w", err)
	}
	return nil
}

// Load retrieves the pending image reference list; missing key is empty.
func (r *RedisPendingRepository) Load(ctx context.Context) ([]string, error) {
	data, err := r.store.Get(ctx, pendingPrescriptionsKey)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load pending prescriptions: %w", err)
	}

	var fileNames []string
	if err := json.Unmarshal(data, &fileNames); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending prescriptions: %w", err)
	}
	return fileNames, nil
}

// Clear removes the pending list (order completed).
func (r *RedisPendingRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, pendingPrescriptionsKey); err != nil {
		return fmt.Errorf("failed to clear pending prescriptions: %w", err)
	}
	return nil
}
