package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pharmacart/internal/core/cache"
	"pharmacart/internal/features/cart/domain"
)

const cartItemsKey = "cart_items"

// RedisCartRepository implements ports.Repository over the local durable store.
// The item list is stored as one JSON blob under a fixed key, last writer wins.
type RedisCartRepository struct {
	store cache.Store
}

// NewRedisCartRepository creates a new RedisCartRepository.
func NewRedisCartRepository(s cache.Store) *RedisCartRepository {
	return &RedisCartRepository{store: s}
}

// Save persists the full item list.
func (r *RedisCartRepository) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	if err := r.store.Set(ctx, cartItemsKey, data, 0); err != nil {
		return fmt.Errorf("failed to save cart items: %w", err)
	}

	return nil
}

// Load retrieves the persisted item list. A missing key is an empty cart.
func (r *RedisCartRepository) Load(ctx context.Context) ([]domain.LineItem, error) {
	data, err := r.store.Get(ctx, cartItemsKey)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return []domain.LineItem{}, nil
		}
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return items, nil
}
