package domain

import "github.com/shopspring/decimal"

// Item is a menu entry owned by the catalog. The cart and orders reference
// items by id only.
type Item struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Image       string
	Description string
	Category    string
	Allergens   []string
}
