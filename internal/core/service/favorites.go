package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// FavoritesService manages the favorites list stored on the user record.
// The whole list is PATCHed back on every toggle, matching the backend's
// data shape. Local state only moves after the backend accepted the change.
type FavoritesService struct {
	users  port.UserRepository
	userID string

	mu        sync.Mutex
	favorites []string
}

func NewFavoritesService(users port.UserRepository, userID string) *FavoritesService {
	return &FavoritesService{users: users, userID: userID}
}

// Load reads the favorites from the user record.
func (s *FavoritesService) Load(ctx context.Context) error {
	user, err := s.users.GetUser(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	s.mu.Lock()
	s.favorites = user.Favorites
	s.mu.Unlock()
	return nil
}

// Toggle adds itemID to the favorites, or removes it if already present,
// and returns the resulting list.
func (s *FavoritesService) Toggle(ctx context.Context, itemID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.ToggleFavorite(s.favorites, itemID)
	if _, err := s.users.UpdateUser(ctx, s.userID, domain.UserChanges{Favorites: next}); err != nil {
		return nil, fmt.Errorf("toggle favorite %s: %w", itemID, err)
	}
	s.favorites = next
	return slices.Clone(next), nil
}

func (s *FavoritesService) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.favorites)
}
