package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/campuseats/storefront/internal/core/domain"
)

const maxPricingConcurrency = 10

// PricedLine is a cart line joined with its catalog item.
type PricedLine struct {
	Line      domain.CartLine
	Item      domain.Item
	LineTotal decimal.Decimal
}

// PriceCart resolves every line's item concurrently and returns the lines
// with their totals plus the cart total.
func PriceCart(ctx context.Context, catalog *CatalogService, lines []domain.CartLine) ([]PricedLine, decimal.Decimal, error) {
	priced := make([]PricedLine, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPricingConcurrency)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			item, err := catalog.Item(ctx, line.ItemID)
			if err != nil {
				return fmt.Errorf("price line %s: %w", line.ID, err)
			}
			priced[idx] = PricedLine{
				Line:      line,
				Item:      item,
				LineTotal: item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range priced {
		total = total.Add(p.LineTotal)
	}
	return priced, total, nil
}
