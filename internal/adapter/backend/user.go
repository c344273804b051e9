package backend

import (
	"context"
	"net/http"

	"github.com/campuseats/storefront/internal/core/domain"
)

// userDTO is the /users wire shape.
type userDTO struct {
	ID        string   `json:"id,omitempty"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	LastName  string   `json:"nom"`
	FirstName string   `json:"prenom"`
	Photo     string   `json:"photo"`
	Favorites []string `json:"favoris"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Email:     d.Email,
		Password:  d.Password,
		LastName:  d.LastName,
		FirstName: d.FirstName,
		Photo:     d.Photo,
		Favorites: d.Favorites,
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var dtos []userDTO
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &dtos); err != nil {
		return nil, err
	}

	users := make([]domain.User, len(dtos))
	for i, d := range dtos {
		users[i] = d.toDomain()
	}
	return users, nil
}

// CreateUser is used by the seeder only; the storefront itself never
// registers users.
func (c *Client) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	body := userDTO{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		LastName:  user.LastName,
		FirstName: user.FirstName,
		Photo:     user.Photo,
		Favorites: user.Favorites,
	}
	var created userDTO
	if err := c.do(ctx, http.MethodPost, "/users", nil, body, &created); err != nil {
		return domain.User{}, err
	}
	return created.toDomain(), nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, nil, &dto); err != nil {
		return domain.User{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, changes domain.UserChanges) (domain.User, error) {
	// PATCH semantics: only the fields present in the body are touched.
	patch := map[string]any{}
	if changes.Email != nil {
		patch["email"] = *changes.Email
	}
	if changes.Password != nil {
		patch["password"] = *changes.Password
	}
	if changes.LastName != nil {
		patch["nom"] = *changes.LastName
	}
	if changes.FirstName != nil {
		patch["prenom"] = *changes.FirstName
	}
	if changes.Photo != nil {
		patch["photo"] = *changes.Photo
	}
	if changes.Favorites != nil {
		patch["favoris"] = changes.Favorites
	}

	var updated userDTO
	if err := c.do(ctx, http.MethodPatch, "/users/"+userID, nil, patch, &updated); err != nil {
		return domain.User{}, err
	}
	return updated.toDomain(), nil
}
