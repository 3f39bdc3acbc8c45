package adapters

import (
	"context"
	"testing"

	"pharmacart/internal/core/cache"
	"pharmacart/internal/features/cart/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *RedisCartRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return NewRedisCartRepository(adapter)
}

func TestRedisCartRepository_SaveAndLoad(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	items := []domain.LineItem{
		{ProductID: "med-1", Title: "Paracetamol 500mg", Quantity: 2, UnitSalePrice: 25, UnitListPrice: 30, CODEligible: true},
		{ProductID: "med-2", Title: "Cetirizine 10mg", Quantity: 1, UnitSalePrice: 40, UnitListPrice: 45},
	}

	require.NoError(t, repo.Save(ctx, items))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestRedisCartRepository_LoadEmpty(t *testing.T) {
	repo := newRepo(t)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisCartRepository_SaveOverwrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []domain.LineItem{{ProductID: "med-1", Quantity: 1}}))
	require.NoError(t, repo.Save(ctx, []domain.LineItem{}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
