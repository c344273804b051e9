package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/campuseats/storefront/internal/core/domain"
)

// orderDTO is the /commandes wire shape.
type orderDTO struct {
	ID       string          `json:"id,omitempty"`
	UserID   string          `json:"userId"`
	Items    []orderItemDTO  `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Date     time.Time       `json:"date"`
	Status   string          `json:"status"`
	Delivery deliveryDTO     `json:"livraison"`
}

type orderItemDTO struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantite"`
}

type deliveryDTO struct {
	PostalCode string `json:"postalCode"`
	Building   string `json:"building"`
	Room       string `json:"room"`
}

func (d orderDTO) toDomain() (domain.Order, error) {
	status := domain.OrderStatus(d.Status)
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("backend: order %s has unknown status %q", d.ID, d.Status)
	}

	items := make([]domain.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.OrderItem{ItemID: it.ItemID, Quantity: it.Quantity}
	}

	return domain.Order{
		ID:     d.ID,
		UserID: d.UserID,
		Items:  items,
		Total:  d.Total,
		Date:   d.Date,
		Status: status,
		Delivery: domain.DeliveryInfo{
			PostalCode: d.Delivery.PostalCode,
			Building:   d.Delivery.Building,
			Room:       d.Delivery.Room,
		},
	}, nil
}

func orderToDTO(o domain.Order) orderDTO {
	items := make([]orderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDTO{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return orderDTO{
		UserID: o.UserID,
		Items:  items,
		Total:  o.Total,
		Date:   o.Date,
		Status: string(o.Status),
		Delivery: deliveryDTO{
			PostalCode: o.Delivery.PostalCode,
			Building:   o.Delivery.Building,
			Room:       o.Delivery.Room,
		},
	}
}

func (c *Client) ListOrders(ctx context.Context, userID string, status domain.OrderStatus) ([]domain.Order, error) {
	query := url.Values{"userId": {userID}}
	if status != "" {
		query.Set("status", string(status))
	}

	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, "/commandes", query, nil, &dtos); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		order, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created orderDTO
	if err := c.do(ctx, http.MethodPost, "/commandes", nil, orderToDTO(order), &created); err != nil {
		return domain.Order{}, err
	}
	return created.toDomain()
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: string(status)}

	var updated orderDTO
	if err := c.do(ctx, http.MethodPatch, "/commandes/"+orderID, nil, body, &updated); err != nil {
		return domain.Order{}, err
	}
	return updated.toDomain()
}
