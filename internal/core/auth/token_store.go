package auth

import (
	"context"
	"errors"

	"pharmacart/internal/core/cache"
	"pharmacart/internal/core/logger"

	"go.uber.org/zap"
)

const tokenKey = "auth_token"

// TokenStore persists the session bearer token in the local durable store.
// A static fallback token (from configuration) is used when nothing is stored.
type TokenStore struct {
	store    cache.Store
	fallback string
}

// NewTokenStore creates a TokenStore over the given durable store.
func NewTokenStore(store cache.Store, fallback string) *TokenStore {
	return &TokenStore{store: store, fallback: fallback}
}

// Token returns the current bearer token, or the fallback when none is stored.
// Store failures degrade to the fallback; they never block a request.
func (s *TokenStore) Token(ctx context.Context) string {
	data, err := s.store.Get(ctx, tokenKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			logger.Get().Warn("Failed to read auth token", zap.Error(err))
		}
		return s.fallback
	}
	return string(data)
}

// Save persists a new session token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.store.Set(ctx, tokenKey, []byte(token), 0)
}

// Clear removes the stored session token.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, tokenKey)
}
