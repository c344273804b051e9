package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/port"
)

// Session bundles the per-user stores. One is created at login and dropped
// at logout; nothing cart- or order-shaped outlives the session.
type Session struct {
	Token     string
	Cart      *CartService
	Orders    *OrderService
	Delivery  *DeliveryHolder
	Favorites *FavoritesService

	mu   sync.Mutex
	user domain.User
}

// User returns a copy of the authenticated user record.
func (s *Session) User() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

// SetUser replaces the user record, typically after a profile update.
func (s *Session) SetUser(user domain.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// SetFavorites updates the favorites on the user record so profile reads
// stay in step with the favorites store between logins.
func (s *Session) SetFavorites(favorites []string) {
	s.mu.Lock()
	s.user.Favorites = favorites
	s.mu.Unlock()
}

// SessionManager authenticates users and hands out token-addressed
// sessions.
type SessionManager struct {
	auth    *AuthService
	catalog *CatalogService
	carts   port.CartRepository
	orders  port.OrderRepository
	users   port.UserRepository

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(auth *AuthService, catalog *CatalogService, carts port.CartRepository, orders port.OrderRepository, users port.UserRepository) *SessionManager {
	return &SessionManager{
		auth:     auth,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		users:    users,
		sessions: make(map[string]*Session),
	}
}

// Login authenticates and builds a fresh session with its stores already
// synced, mirroring the load-on-login effects of the screens. A failed
// initial sync fails the login; no half-initialized session is registered.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	cart := NewCartService(m.carts, user.ID)
	delivery := NewDeliveryHolder()
	sess := &Session{
		Token:     uuid.NewString(),
		user:      user,
		Cart:      cart,
		Orders:    NewOrderService(m.orders, cart, m.catalog, delivery, user.ID),
		Delivery:  delivery,
		Favorites: NewFavoritesService(m.users, user.ID),
	}

	if err := sess.Cart.Refresh(ctx); err != nil {
		return nil, err
	}
	if err := sess.Orders.Refresh(ctx); err != nil {
		return nil, err
	}
	if err := sess.Favorites.Load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.Token] = sess
	m.mu.Unlock()
	return sess, nil
}

func (m *SessionManager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	return sess, ok
}

// Logout tears the session down. The token is invalid afterwards.
func (m *SessionManager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
}
