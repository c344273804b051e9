package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// ErrCartClearIncomplete reports that an order was created but one or more
// cart lines could not be deleted afterwards. The order stands; the leftover
// lines remain in the cart and a later Clear drains them. Retrying PlaceOrder
// would create a second order, so callers must not.
var ErrCartClearIncomplete = errors.New("order placed but cart not fully cleared")

// OrderService converts the cart into orders and tracks them by status.
type OrderService struct {
	repo     port.OrderRepository
	cart     *CartService
	catalog  *CatalogService
	delivery *DeliveryHolder
	userID   string
	now      func() time.Time

	mu      sync.Mutex
	pending []domain.Order
	history []domain.Order
}

func NewOrderService(repo port.OrderRepository, cart *CartService, catalog *CatalogService, delivery *DeliveryHolder, userID string) *OrderService {
	return &OrderService{
		repo:     repo,
		cart:     cart,
		catalog:  catalog,
		delivery: delivery,
		userID:   userID,
		now:      time.Now,
	}
}

// PlaceOrder freezes the current cart into a pending order: items and
// quantities from the cart snapshot, total from the catalog prices, delivery
// info from the holder. An empty cart is a no-op and returns (nil, nil).
//
// The cart is cleared only after the order is created, so a create failure
// leaves the cart untouched. A failure while clearing returns the created
// order together with ErrCartClearIncomplete.
func (s *OrderService) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	lines, err := s.cart.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	priced, total, err := PriceCart(ctx, s.catalog, lines)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(priced))
	for i, p := range priced {
		items[i] = domain.OrderItem{ItemID: p.Line.ItemID, Quantity: p.Line.Quantity}
	}

	order := domain.Order{
		UserID:   s.userID,
		Items:    items,
		Total:    total,
		Date:     s.now(),
		Status:   domain.OrderStatusPending,
		Delivery: s.delivery.Snapshot(),
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		return &created, fmt.Errorf("clear cart after order %s: %w",
			created.ID, errors.Join(ErrCartClearIncomplete, err))
	}
	if err := s.Refresh(ctx); err != nil {
		return &created, err
	}
	return &created, nil
}

// Refresh fetches all of the user's orders and partitions them into the
// pending set and the received history, both date-ordered oldest first. The
// history is unbounded here; any truncation belongs to the presentation
// layer.
func (s *OrderService) Refresh(ctx context.Context) error {
	orders, err := s.repo.ListOrders(ctx, s.userID, "")
	if err != nil {
		return fmt.Errorf("refresh orders: %w", err)
	}

	pending, history := domain.PartitionOrders(orders)
	domain.SortOrdersByDate(pending)
	domain.SortOrdersByDate(history)

	s.mu.Lock()
	s.pending, s.history = pending, history
	s.mu.Unlock()
	return nil
}

// ConfirmReceipt marks an order as received and refreshes. Confirming an
// already-received order sets the same status again, which is a no-op in
// effect.
func (s *OrderService) ConfirmReceipt(ctx context.Context, orderID string) error {
	if _, err := s.repo.UpdateStatus(ctx, orderID, domain.OrderStatusReceived); err != nil {
		return fmt.Errorf("confirm receipt: %w", err)
	}
	return s.Refresh(ctx)
}

// Pending returns the orders awaiting receipt confirmation.
func (s *OrderService) Pending() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.pending)
}

// History returns the received orders.
func (s *OrderService) History() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.history)
}
