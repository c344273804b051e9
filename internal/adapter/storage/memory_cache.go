package storage

import (
	"context"
	"sync"
	"time"

	"github.com/campuseats/storefront/internal/core/domain"
)

// MemoryCache is the in-process fallback when no Redis address is
// configured. Expiry is checked lazily on read.
type MemoryCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	item      domain.Item
	expiresAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *MemoryCache) GetItem(_ context.Context, itemID string) (domain.Item, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.items[itemID]
	if !ok {
		return domain.Item{}, false, nil
	}
	if m.now().After(entry.expiresAt) {
		delete(m.items, itemID)
		return domain.Item{}, false, nil
	}
	return entry.item, true, nil
}

func (m *MemoryCache) SetItem(_ context.Context, item domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[item.ID] = memoryEntry{item: item, expiresAt: m.now().Add(m.ttl)}
	return nil
}
