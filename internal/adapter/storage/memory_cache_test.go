package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/storefront/internal/core/domain"
)

func TestMemoryCache_HitAndMiss(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, ok, err := cache.GetItem(ctx, "item-a")
	require.NoError(t, err)
	assert.False(t, ok)

	item := domain.Item{ID: "item-a", Name: "Croque-monsieur", Price: decimal.NewFromFloat(4.5)}
	require.NoError(t, cache.SetItem(ctx, item))

	got, ok, err := cache.GetItem(ctx, "item-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Croque-monsieur", got.Name)
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.SetItem(ctx, domain.Item{ID: "item-a"}))

	now = base.Add(30 * time.Second)
	_, ok, err := cache.GetItem(ctx, "item-a")
	require.NoError(t, err)
	assert.True(t, ok)

	now = base.Add(2 * time.Minute)
	_, ok, err = cache.GetItem(ctx, "item-a")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire after the TTL")
}
