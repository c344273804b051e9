package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/storefront/internal/core/domain"
)

func newTestSessionManager(userRepo *mockUserRepo, cartRepo *mockCartRepo) *SessionManager {
	catalog := NewCatalogService(&mockCatalogRepo{items: map[string]domain.Item{}}, nopCache{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewSessionManager(NewAuthService(userRepo), catalog, cartRepo, newMockOrderRepo(), userRepo)
}

func TestSessionLogin_BuildsSyncedSession(t *testing.T) {
	cartRepo := newMockCartRepo()
	_, err := cartRepo.CreateLine(context.Background(), domain.CartLine{UserID: "u1", ItemID: "item-a", Quantity: 2})
	require.NoError(t, err)

	m := newTestSessionManager(newMockUserRepo(alice), cartRepo)

	sess, err := m.Login(context.Background(), "alice@campus.fr", "alice123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "u1", sess.User().ID)

	// The cart was synced during login, before any explicit refresh.
	require.Len(t, sess.Cart.Lines(), 1)
	assert.Equal(t, "item-a", sess.Cart.Lines()[0].ItemID)

	got, ok := m.Get(sess.Token)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestSessionLogin_InvalidCredentials(t *testing.T) {
	m := newTestSessionManager(newMockUserRepo(alice), newMockCartRepo())

	_, err := m.Login(context.Background(), "alice@campus.fr", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLogout_InvalidatesToken(t *testing.T) {
	m := newTestSessionManager(newMockUserRepo(alice), newMockCartRepo())

	sess, err := m.Login(context.Background(), "alice@campus.fr", "alice123")
	require.NoError(t, err)

	m.Logout(sess.Token)
	_, ok := m.Get(sess.Token)
	assert.False(t, ok)
}

func TestSessionLogin_TwoLoginsGetIndependentCarts(t *testing.T) {
	m := newTestSessionManager(newMockUserRepo(alice), newMockCartRepo())
	ctx := context.Background()

	first, err := m.Login(ctx, "alice@campus.fr", "alice123")
	require.NoError(t, err)
	second, err := m.Login(ctx, "alice@campus.fr", "alice123")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.NotSame(t, first.Cart, second.Cart)
}
