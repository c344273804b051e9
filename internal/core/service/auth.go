package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// ErrInvalidCredentials is the one failure the screens show to the user
// directly, so it stays distinguishable from transport errors.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// AuthService implements the mock backend's login model: list the users and
// match email and password in the clear. The backend has no auth endpoint of
// its own.
type AuthService struct {
	users port.UserRepository
}

func NewAuthService(users port.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, ErrInvalidCredentials
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, changes domain.UserChanges) (domain.User, error) {
	user, err := s.users.UpdateUser(ctx, userID, changes)
	if err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
