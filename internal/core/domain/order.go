package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusReceived OrderStatus = "received"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusReceived
}

// OrderItem is a cart line frozen into an order: item reference plus the
// quantity at placement time.
type OrderItem struct {
	ItemID   string
	Quantity int
}

// DeliveryInfo holds the free-form address fields attached to an order.
// No format validation is applied to any of them.
type DeliveryInfo struct {
	PostalCode string
	Building   string
	Room       string
}

// Order is an immutable snapshot of a cart plus delivery info. The only
// mutation after creation is the one-way pending -> received transition.
type Order struct {
	ID       string
	UserID   string
	Items    []OrderItem
	Total    decimal.Decimal
	Date     time.Time
	Status   OrderStatus
	Delivery DeliveryInfo
}

func (o Order) Received() bool {
	return o.Status == OrderStatusReceived
}

// PartitionOrders splits orders into the pending set and the received
// history. Both slices are unbounded; any truncation is up to the caller.
func PartitionOrders(orders []Order) (pending, received []Order) {
	for _, o := range orders {
		if o.Received() {
			received = append(received, o)
		} else {
			pending = append(pending, o)
		}
	}
	return pending, received
}

// SortOrdersByDate sorts oldest first, so the most recent orders sit at the
// end of the slice.
func SortOrdersByDate(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		return a.Date.Compare(b.Date)
	})
}
