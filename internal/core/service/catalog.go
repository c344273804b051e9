package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// CatalogService reads menu items from the backend with a cache-aside item
// cache in front of the per-id lookups. Cache failures are logged and
// treated as misses; the backend answer always wins.
type CatalogService struct {
	repo  port.CatalogRepository
	cache port.CatalogCache
	log   *slog.Logger
}

func NewCatalogService(repo port.CatalogRepository, cache port.CatalogCache, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) Items(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	s.warm(ctx, items)
	return items, nil
}

func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	items, err := s.repo.ListItemsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list items in %q: %w", category, err)
	}
	s.warm(ctx, items)
	return items, nil
}

func (s *CatalogService) Item(ctx context.Context, itemID string) (domain.Item, error) {
	item, ok, err := s.cache.GetItem(ctx, itemID)
	if err != nil {
		s.log.Warn("item cache read failed", "item", itemID, "error", err)
	}
	if ok {
		return item, nil
	}

	item, err = s.repo.GetItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	if err := s.cache.SetItem(ctx, item); err != nil {
		s.log.Warn("item cache write failed", "item", itemID, "error", err)
	}
	return item, nil
}

func (s *CatalogService) warm(ctx context.Context, items []domain.Item) {
	for _, item := range items {
		if err := s.cache.SetItem(ctx, item); err != nil {
			s.log.Warn("item cache write failed", "item", item.ID, "error", err)
			return
		}
	}
}
