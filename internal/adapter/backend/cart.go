package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/campuseats/storefront/internal/core/domain"
)

// cartLineDTO is the /panier wire shape.
type cartLineDTO struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"userId"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantite"`
}

func (d cartLineDTO) toDomain() (domain.CartLine, error) {
	if d.Quantity < 0 {
		return domain.CartLine{}, fmt.Errorf("backend: cart line %s has negative quantity %d", d.ID, d.Quantity)
	}
	return domain.CartLine{
		ID:       d.ID,
		UserID:   d.UserID,
		ItemID:   d.ItemID,
		Quantity: d.Quantity,
	}, nil
}

func (c *Client) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	var dtos []cartLineDTO
	query := url.Values{"userId": {userID}}
	if err := c.do(ctx, http.MethodGet, "/panier", query, nil, &dtos); err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(dtos))
	for _, d := range dtos {
		line, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (c *Client) CreateLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	body := cartLineDTO{
		UserID:   line.UserID,
		ItemID:   line.ItemID,
		Quantity: line.Quantity,
	}
	var created cartLineDTO
	if err := c.do(ctx, http.MethodPost, "/panier", nil, body, &created); err != nil {
		return domain.CartLine{}, err
	}
	return created.toDomain()
}

func (c *Client) UpdateQuantity(ctx context.Context, lineID string, quantity int) (domain.CartLine, error) {
	body := struct {
		Quantity int `json:"quantite"`
	}{Quantity: quantity}

	var updated cartLineDTO
	if err := c.do(ctx, http.MethodPatch, "/panier/"+lineID, nil, body, &updated); err != nil {
		return domain.CartLine{}, err
	}
	return updated.toDomain()
}

func (c *Client) DeleteLine(ctx context.Context, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/panier/"+lineID, nil, nil, nil)
}
