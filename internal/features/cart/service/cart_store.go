package service

import (
	"context"
	"sync"

	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/cart/domain"
	"pharmacart/internal/features/cart/ports"

	"go.uber.org/zap"
)

// CartStore implements ports.Store. It is the single owner of the in-memory
// item list; every mutation persists the full list and notifies subscribers.
// Persistence failures are logged and swallowed so the in-memory mutation
// always takes effect.
type CartStore struct {
	mu          sync.Mutex
	items       []domain.LineItem
	repo        ports.Repository
	subscribers []func()
}

// NewCartStore creates an empty CartStore backed by the given repository.
func NewCartStore(repo ports.Repository) *CartStore {
	return &CartStore{repo: repo}
}

// Hydrate loads the persisted item list into memory without re-persisting.
// Called once at startup; a load failure leaves the cart empty.
func (s *CartStore) Hydrate(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItems merges incoming items into the cart. Lines sharing a product id
// have their quantities summed; new products are appended in order.
// Incoming entries with a non-positive quantity are ignored.
func (s *CartStore) AddItems(ctx context.Context, items []domain.LineItem) {
	s.mu.Lock()
	for _, incoming := range items {
		if incoming.Quantity <= 0 {
			continue
		}
		merged := false
		for i := range s.items {
			if s.items[i].ProductID == incoming.ProductID {
				s.items[i].Quantity += incoming.Quantity
				merged = true
				break
			}
		}
		if !merged {
			s.items = append(s.items, incoming)
		}
	}
	snapshot := s.copyItems()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify()
}

// UpdateQuantity sets a line's quantity; 0 or below removes the line.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		break
	}
	snapshot := s.copyItems()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify()
}

// RemoveItem removes a line unconditionally.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	snapshot := s.copyItems()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify()
}

// ReplaceAll swaps the entire item list and persists it.
func (s *CartStore) ReplaceAll(ctx context.Context, items []domain.LineItem) {
	s.mu.Lock()
	s.items = append([]domain.LineItem(nil), items...)
	snapshot := s.copyItems()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify()
}

// Items returns a copy of the current line items.
func (s *CartStore) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Count returns the number of distinct line items.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot captures the current cart contents.
func (s *CartStore) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot{Items: s.copyItems(), Count: len(s.items)}
}

// Subscribe registers a callback invoked after every mutation.
// Used by the coupon resolver to re-validate on cart changes.
func (s *CartStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// copyItems must be called with the mutex held.
func (s *CartStore) copyItems() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CartStore) persist(ctx context.Context, items []domain.LineItem) {
	if err := s.repo.Save(ctx, items); err != nil {
		logger.Get().Warn("Failed to persist cart", zap.Error(err), zap.Int("item_count", len(items)))
	}
}

func (s *CartStore) notify() {
	s.mu.Lock()
	subs := append([]func()(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
