package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	cartadapters "pharmacart/internal/features/cart/adapters"
	cartdomain "pharmacart/internal/features/cart/domain"
	cartservice "pharmacart/internal/features/cart/service"
	"pharmacart/internal/features/coupons/domain"

	"pharmacart/internal/core/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider implements ports.Provider with pluggable behavior so tests
// can control completion order of concurrent validations.
type fakeProvider struct {
	mu         sync.Mutex
	listFn     func(ctx context.Context) ([]domain.Coupon, error)
	validateFn func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error)
	calls      int
}

func (f *fakeProvider) List(ctx context.Context) ([]domain.Coupon, error) {
	return f.listFn(ctx)
}

func (f *fakeProvider) Validate(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.validateFn(ctx, code, items, total)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newCart(t *testing.T) *cartservice.CartStore {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return cartservice.NewCartStore(cartadapters.NewRedisCartRepository(adapter))
}

func seedCart(t *testing.T) *cartservice.CartStore {
	t.Helper()
	cart := newCart(t)
	cart.AddItems(context.Background(), []cartdomain.LineItem{
		{ProductID: "med-1", Quantity: 2, UnitSalePrice: 80, UnitListPrice: 100},
	})
	return cart
}

func TestCouponResolver_Apply_Success(t *testing.T) {
	provider := &fakeProvider{
		validateFn: func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
			assert.Equal(t, "SAVE10", code)
			assert.Equal(t, 160.0, total)
			require.Len(t, items, 1)
			return &domain.ValidationResult{Success: true, Discount: 10, GrandTotal: 150}, nil
		},
	}
	resolver := NewCouponResolver(provider, seedCart(t))

	result, err := resolver.Apply(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.Equal(t, domain.StateApplied, resolver.State())
	applied := resolver.Applied()
	require.NotNil(t, applied)
	assert.Equal(t, 10.0, applied.Discount)
	assert.Equal(t, 150.0, applied.GrandTotal)
}

func TestCouponResolver_Apply_ServerRejection(t *testing.T) {
	provider := &fakeProvider{
		validateFn: func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
			return &domain.ValidationResult{Success: false, Message: "Minimum order value not met"}, nil
		},
	}
	resolver := NewCouponResolver(provider, seedCart(t))

	result, err := resolver.Apply(context.Background(), "BIGSAVE")
	require.NoError(t, err)
	assert.False(t, result.Success)

	assert.Equal(t, domain.StateRejected, resolver.State())
	assert.Nil(t, resolver.Applied())
	assert.Equal(t, "Minimum order value not met", resolver.Message())
}

func TestCouponResolver_Apply_TransportFailureReverts(t *testing.T) {
	calls := 0
	provider := &fakeProvider{
		validateFn: func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
			calls++
			if calls == 1 {
				return &domain.ValidationResult{Success: true, Discount: 10, GrandTotal: 150}, nil
			}
			return nil, errors.New("connection reset")
		},
	}
	resolver := NewCouponResolver(provider, seedCart(t))
	ctx := context.Background()

	_, err := resolver.Apply(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, resolver.Applied())

	_, err = resolver.Apply(ctx, "SAVE10")
	require.Error(t, err)

	// Discount resets fully; grand total reverts to the no-coupon amount.
	assert.Nil(t, resolver.Applied())
	assert.Equal(t, domain.StateRejected, resolver.State())
}

func TestCouponResolver_LastResolvedWins(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	provider := &fakeProvider{}
	provider.validateFn = func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
		if code == "SLOW" {
			close(firstStarted)
			<-release
			return &domain.ValidationResult{Success: true, Discount: 5, GrandTotal: 155}, nil
		}
		return &domain.ValidationResult{Success: true, Discount: 20, GrandTotal: 140}, nil
	}

	resolver := NewCouponResolver(provider, seedCart(t))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		resolver.Apply(ctx, "SLOW")
	}()

	<-firstStarted
	_, err := resolver.Apply(ctx, "FAST")
	require.NoError(t, err)

	close(release)
	<-done

	// The slow validation settled last but was initiated first; its result
	// must not overwrite the newer one.
	applied := resolver.Applied()
	require.NotNil(t, applied)
	assert.Equal(t, "FAST", applied.Code)
	assert.Equal(t, 20.0, applied.Discount)
}

func TestCouponResolver_Remove(t *testing.T) {
	provider := &fakeProvider{
		validateFn: func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
			return &domain.ValidationResult{Success: true, Discount: 10, GrandTotal: 150}, nil
		},
	}
	resolver := NewCouponResolver(provider, seedCart(t))

	_, err := resolver.Apply(context.Background(), "SAVE10")
	require.NoError(t, err)

	resolver.Remove()

	assert.Equal(t, domain.StateUnapplied, resolver.State())
	assert.Nil(t, resolver.Applied())
	assert.Empty(t, resolver.Message())
}

func TestCouponResolver_Revalidate_OnlyWhenActive(t *testing.T) {
	provider := &fakeProvider{
		validateFn: func(ctx context.Context, code string, items []cartdomain.LineItem, total float64) (*domain.ValidationResult, error) {
			return &domain.ValidationResult{Success: true, Discount: 10, GrandTotal: 150}, nil
		},
	}
	resolver := NewCouponResolver(provider, seedCart(t))
	ctx := context.Background()

	// No coupon yet: revalidation is a no-op, no round trip.
	resolver.Revalidate(ctx)
	assert.Equal(t, 0, provider.callCount())

	_, err := resolver.Apply(ctx, "SAVE10")
	require.NoError(t, err)

	resolver.Revalidate(ctx)
	assert.Equal(t, 2, provider.callCount())
}

func TestCouponResolver_List(t *testing.T) {
	provider := &fakeProvider{
		listFn: func(ctx context.Context) ([]domain.Coupon, error) {
			return []domain.Coupon{{Code: "SAVE10", MinOrderValue: 100}}, nil
		},
	}
	resolver := NewCouponResolver(provider, newCart(t))

	coupons, err := resolver.List(context.Background())
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "SAVE10", coupons[0].Code)
}
