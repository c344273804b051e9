package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/campuseats/storefront/internal/core/domain"
)

// itemDTO is the /items wire shape. Field names follow the backend's mixed
// French/English vocabulary.
type itemDTO struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"categorie"`
	Allergens   []string        `json:"allergenes"`
}

func (d itemDTO) toDomain() domain.Item {
	return domain.Item{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Image:       d.Image,
		Description: d.Description,
		Category:    d.Category,
		Allergens:   d.Allergens,
	}
}

func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	return c.listItems(ctx, nil)
}

func (c *Client) ListItemsByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	return c.listItems(ctx, url.Values{"categorie": {category}})
}

func (c *Client) listItems(ctx context.Context, query url.Values) ([]domain.Item, error) {
	var dtos []itemDTO
	if err := c.do(ctx, http.MethodGet, "/items", query, nil, &dtos); err != nil {
		return nil, err
	}

	items := make([]domain.Item, len(dtos))
	for i, d := range dtos {
		items[i] = d.toDomain()
	}
	return items, nil
}

// CreateItem is used by the seeder only; the storefront treats the catalog
// as read-only.
func (c *Client) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	body := itemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Image:       item.Image,
		Description: item.Description,
		Category:    item.Category,
		Allergens:   item.Allergens,
	}
	var created itemDTO
	if err := c.do(ctx, http.MethodPost, "/items", nil, body, &created); err != nil {
		return domain.Item{}, err
	}
	return created.toDomain(), nil
}

func (c *Client) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	var dto itemDTO
	if err := c.do(ctx, http.MethodGet, "/items/"+itemID, nil, nil, &dto); err != nil {
		return domain.Item{}, err
	}
	return dto.toDomain(), nil
}
