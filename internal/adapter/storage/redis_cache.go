package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuseats/storefront/internal/core/domain"
)

const itemKeyPrefix = "item:"

// RedisCache caches catalog items in Redis with a TTL. Cache errors other
// than a miss are returned to the caller, which treats them as a miss and
// falls through to the backend.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) GetItem(ctx context.Context, itemID string) (domain.Item, bool, error) {
	raw, err := r.client.Get(ctx, itemKeyPrefix+itemID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Item{}, false, nil
	}
	if err != nil {
		return domain.Item{}, false, fmt.Errorf("redis get item %s: %w", itemID, err)
	}

	var item domain.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.Item{}, false, fmt.Errorf("redis decode item %s: %w", itemID, err)
	}
	return item, true, nil
}

func (r *RedisCache) SetItem(ctx context.Context, item domain.Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("redis encode item %s: %w", item.ID, err)
	}
	if err := r.client.Set(ctx, itemKeyPrefix+item.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set item %s: %w", item.ID, err)
	}
	return nil
}
