package port

import (
	"context"

	"github.com/campuseats/storefront/internal/core/domain"
)

// CartRepository is the cart resource on the mock backend (/panier).
type CartRepository interface {
	// ListLines returns every cart line belonging to userID
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)

	// CreateLine persists a new line and returns it with its server id
	CreateLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error)

	// UpdateQuantity sets the quantity of an existing line
	UpdateQuantity(ctx context.Context, lineID string, quantity int) (domain.CartLine, error)

	// DeleteLine removes a line by id
	DeleteLine(ctx context.Context, lineID string) error
}

// OrderRepository is the order resource on the mock backend (/commandes).
type OrderRepository interface {
	// ListOrders returns the user's orders, optionally filtered by status
	// (empty status means all)
	ListOrders(ctx context.Context, userID string, status domain.OrderStatus) ([]domain.Order, error)

	// CreateOrder persists a new order and returns it with its server id
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	// UpdateStatus sets the status of an existing order
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error)
}

// CatalogRepository is the read-only item resource (/items).
type CatalogRepository interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListItemsByCategory(ctx context.Context, category string) ([]domain.Item, error)
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
}

// UserRepository is the user resource (/users), which also carries the
// favorites list.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, userID string) (domain.User, error)

	// UpdateUser patches the given fields onto the stored user and returns
	// the updated record; nil map fields are left untouched
	UpdateUser(ctx context.Context, userID string, changes domain.UserChanges) (domain.User, error)
}
