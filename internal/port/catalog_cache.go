package port

import (
	"context"

	"github.com/campuseats/storefront/internal/core/domain"
)

// CatalogCache is a TTL-bound cache for catalog items, used cache-aside in
// front of the backend. A miss is (zero item, false, nil error).
type CatalogCache interface {
	GetItem(ctx context.Context, itemID string) (domain.Item, bool, error)
	SetItem(ctx context.Context, item domain.Item) error
}
