package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent from the store.
var ErrNotFound = errors.New("key not found")

// Store defines the durable key-value operations used for device-local state
// (cart items, pending prescriptions, auth token). Writes are last-writer-wins
// with no locking; values are opaque JSON blobs under fixed keys.
type Store interface {
	// Get retrieves a value by key. Returns ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
