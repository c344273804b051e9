package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/storefront/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, itemKeyPrefix+"item-rt")

	cache := NewRedisCache(client, time.Minute)
	item := domain.Item{
		ID:        "item-rt",
		Name:      "Salade César",
		Price:     decimal.NewFromFloat(6.00),
		Category:  "plats",
		Allergens: []string{"gluten", "lait"},
	}
	require.NoError(t, cache.SetItem(ctx, item))

	got, ok, err := cache.GetItem(ctx, "item-rt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item.Name, got.Name)
	assert.True(t, item.Price.Equal(got.Price))
	assert.Equal(t, item.Allergens, got.Allergens)
}

func TestRedisCache_MissOnUnknownItem(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	cache := NewRedisCache(client, time.Minute)
	_, ok, err := cache.GetItem(context.Background(), "item-does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_EntryExpires(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	cache := NewRedisCache(client, 50*time.Millisecond)
	require.NoError(t, cache.SetItem(ctx, domain.Item{ID: "item-exp"}))

	time.Sleep(100 * time.Millisecond)

	_, ok, err := cache.GetItem(ctx, "item-exp")
	require.NoError(t, err)
	assert.False(t, ok)
}
