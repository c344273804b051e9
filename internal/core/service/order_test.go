package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/storefront/internal/core/domain"
)

type mockOrderRepo struct {
	mu     sync.Mutex
	nextID int
	orders map[string]domain.Order

	createErr error
	updateErr error
	listErr   error

	createCalls int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]domain.Order)}
}

func (m *mockOrderRepo) ListOrders(_ context.Context, userID string, status domain.OrderStatus) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createErr != nil {
		return domain.Order{}, m.createErr
	}
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	m.orders[order.ID] = order
	return order, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateErr != nil {
		return domain.Order{}, m.updateErr
	}
	order, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, errors.New("no such order")
	}
	order.Status = status
	m.orders[orderID] = order
	return order, nil
}

type mockCatalogRepo struct {
	items  map[string]domain.Item
	getErr error
}

func (m *mockCatalogRepo) ListItems(context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *mockCatalogRepo) ListItemsByCategory(_ context.Context, category string) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range m.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) GetItem(_ context.Context, itemID string) (domain.Item, error) {
	if m.getErr != nil {
		return domain.Item{}, m.getErr
	}
	it, ok := m.items[itemID]
	if !ok {
		return domain.Item{}, errors.New("no such item")
	}
	return it, nil
}

type nopCache struct{}

func (nopCache) GetItem(context.Context, string) (domain.Item, bool, error) {
	return domain.Item{}, false, nil
}

func (nopCache) SetItem(context.Context, domain.Item) error { return nil }

type orderEnv struct {
	cartRepo  *mockCartRepo
	orderRepo *mockOrderRepo
	cart      *CartService
	delivery  *DeliveryHolder
	orders    *OrderService
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()

	catalogRepo := &mockCatalogRepo{items: map[string]domain.Item{
		"item-a": {ID: "item-a", Name: "Croque-monsieur", Price: decimal.NewFromInt(10)},
		"item-b": {ID: "item-b", Name: "Tarte", Price: decimal.NewFromInt(5)},
	}}
	catalog := NewCatalogService(catalogRepo, nopCache{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	cartRepo := newMockCartRepo()
	orderRepo := newMockOrderRepo()
	cart := NewCartService(cartRepo, "u1")
	delivery := NewDeliveryHolder()

	return &orderEnv{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		cart:      cart,
		delivery:  delivery,
		orders:    NewOrderService(orderRepo, cart, catalog, delivery, "u1"),
	}
}

func TestPlaceOrder_SnapshotTotalAndStatus(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	// item A: price 10, qty 2; item B: price 5, qty 1.
	require.NoError(t, env.cart.Add(ctx, "item-a"))
	require.NoError(t, env.cart.Add(ctx, "item-a"))
	require.NoError(t, env.cart.Add(ctx, "item-b"))

	require.NoError(t, env.delivery.SetField(DeliveryFieldPostalCode, "91400"))
	require.NoError(t, env.delivery.SetField(DeliveryFieldBuilding, "620"))
	require.NoError(t, env.delivery.SetField(DeliveryFieldRoom, "TD12"))

	placedAt := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)
	env.orders.now = func() time.Time { return placedAt }

	order, err := env.orders.PlaceOrder(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(25)), "total was %s", order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, placedAt, order.Date)
	assert.Equal(t, domain.DeliveryInfo{PostalCode: "91400", Building: "620", Room: "TD12"}, order.Delivery)
	assert.Len(t, order.Items, 2)

	assert.Empty(t, env.cart.Lines(), "cart must be empty after placing")

	pending := env.orders.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].ID)
	assert.Empty(t, env.orders.History())
}

func TestPlaceOrder_EmptyCartIsNoOp(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.orders.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Zero(t, env.orderRepo.createCalls, "no order request may be issued")
}

func TestPlaceOrder_CreateFailureLeavesCartUntouched(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cart.Add(ctx, "item-a"))
	env.orderRepo.createErr = errors.New("backend down")

	order, err := env.orders.PlaceOrder(ctx)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Len(t, env.cart.Lines(), 1)
}

func TestPlaceOrder_ClearFailureReturnsOrderAndSentinel(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cart.Add(ctx, "item-a"))
	env.cartRepo.deleteErr = errors.New("backend down")

	order, err := env.orders.PlaceOrder(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCartClearIncomplete)
	require.NotNil(t, order, "the order was created and must be reported")
	assert.Equal(t, 1, env.orderRepo.createCalls)
	assert.Len(t, env.cart.Lines(), 1, "leftover line stays visible")

	// The leftover is drained by a later Clear, not by retrying PlaceOrder.
	env.cartRepo.deleteErr = nil
	require.NoError(t, env.cart.Clear(ctx))
	assert.Empty(t, env.cart.Lines())
	assert.Equal(t, 1, env.orderRepo.createCalls, "no second order")
}

func TestConfirmReceipt_MovesOrderAndIsIdempotent(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cart.Add(ctx, "item-a"))
	order, err := env.orders.PlaceOrder(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.NoError(t, env.orders.ConfirmReceipt(ctx, order.ID))
	assert.Empty(t, env.orders.Pending())
	require.Len(t, env.orders.History(), 1)
	assert.Equal(t, domain.OrderStatusReceived, env.orders.History()[0].Status)

	// Confirming again sets the same status; nothing duplicates or errors.
	require.NoError(t, env.orders.ConfirmReceipt(ctx, order.ID))
	assert.Empty(t, env.orders.Pending())
	assert.Len(t, env.orders.History(), 1)
}

func TestRefresh_HistoryIsUnbounded(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, env.cart.Add(ctx, "item-a"))
		order, err := env.orders.PlaceOrder(ctx)
		require.NoError(t, err)
		require.NoError(t, env.orders.ConfirmReceipt(ctx, order.ID))
	}

	require.NoError(t, env.orders.Refresh(ctx))
	assert.Len(t, env.orders.History(), 7, "store layer never truncates history")
}

func TestRefresh_OrdersAreDateOrdered(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	// Seed out of order; the repo mock lists in map order, so the store
	// cannot rely on the response sequence.
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{3, 1, 4, 0, 2} {
		_, err := env.orderRepo.CreateOrder(ctx, domain.Order{
			UserID: "u1",
			Status: domain.OrderStatusReceived,
			Date:   base.Add(time.Duration(offset) * time.Hour),
		})
		require.NoError(t, err)
	}

	require.NoError(t, env.orders.Refresh(ctx))

	history := env.orders.History()
	require.Len(t, history, 5)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Date.Before(history[i-1].Date), "history must be oldest first")
	}
	assert.Equal(t, base.Add(4*time.Hour), history[len(history)-1].Date, "most recent order sits at the end")
}

func TestRefresh_PartitionsByStatus(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cart.Add(ctx, "item-a"))
	first, err := env.orders.PlaceOrder(ctx)
	require.NoError(t, err)

	require.NoError(t, env.cart.Add(ctx, "item-b"))
	second, err := env.orders.PlaceOrder(ctx)
	require.NoError(t, err)

	require.NoError(t, env.orders.ConfirmReceipt(ctx, first.ID))

	pending := env.orders.Pending()
	history := env.orders.History()
	require.Len(t, pending, 1)
	require.Len(t, history, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, history[0].ID)
}
