package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// CartService owns one user's cart. The backend is the source of truth:
// every mutation re-reads the full cart before returning, so local state
// always reflects the last server response rather than an optimistic merge.
//
// All operations on one CartService are serialized. Two rapid Add calls for
// the same item therefore become create-then-increment instead of racing two
// creates (or two stale increments) against the same line.
type CartService struct {
	repo   port.CartRepository
	userID string

	mu    sync.Mutex
	lines []domain.CartLine
}

func NewCartService(repo port.CartRepository, userID string) *CartService {
	return &CartService{
		repo:   repo,
		userID: userID,
	}
}

// Add puts one unit of itemID in the cart. If a line for the item already
// exists its quantity is incremented; a second line is never created.
func (s *CartService) Add(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := domain.FindLineByItem(s.lines, itemID); ok {
		return s.setQuantity(ctx, line.ID, line.Quantity+1)
	}

	line := domain.CartLine{UserID: s.userID, ItemID: itemID, Quantity: 1}
	if _, err := s.repo.CreateLine(ctx, line); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return s.refresh(ctx)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line; negative quantities are never persisted.
func (s *CartService) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setQuantity(ctx, lineID, quantity)
}

func (s *CartService) setQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.remove(ctx, lineID)
	}
	if _, err := s.repo.UpdateQuantity(ctx, lineID, quantity); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return s.refresh(ctx)
}

// Remove deletes a line regardless of its quantity.
func (s *CartService) Remove(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(ctx, lineID)
}

func (s *CartService) remove(ctx context.Context, lineID string) error {
	if err := s.repo.DeleteLine(ctx, lineID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return s.refresh(ctx)
}

// Clear deletes every line, one delete per line. Individual failures do not
// stop the sweep; they are joined into the returned error and the lines they
// left behind stay visible after the trailing refresh, so a later Clear can
// drain them.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, line := range s.lines {
		if err := s.repo.DeleteLine(ctx, line.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete line %s: %w", line.ID, err))
		}
	}
	if err := s.refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Refresh re-reads the cart from the backend.
func (s *CartService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refresh(ctx)
}

func (s *CartService) refresh(ctx context.Context) error {
	lines, err := s.repo.ListLines(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("refresh cart: %w", err)
	}
	s.lines = lines
	return nil
}

// Snapshot refreshes and returns the resulting lines in one step.
func (s *CartService) Snapshot(ctx context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.lines), nil
}

// Lines returns the lines from the last refresh.
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.lines)
}
