// Package handler exposes the storefront API the screens talk to.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/campuseats/storefront/internal/adapter/backend"
	"github.com/campuseats/storefront/internal/core/domain"
	"github.com/campuseats/storefront/internal/core/service"
)

type Handler struct {
	sessions *service.SessionManager
	auth     *service.AuthService
	catalog  *service.CatalogService
	log      *slog.Logger
}

func New(sessions *service.SessionManager, auth *service.AuthService, catalog *service.CatalogService, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		auth:     auth,
		catalog:  catalog,
		log:      log,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.health)
	r.Post("/api/login", h.login)
	r.Get("/api/items", h.listItems)
	r.Get("/api/items/{id}", h.getItem)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Post("/api/logout", h.logout)
		r.Get("/api/profile", h.profile)
		r.Patch("/api/profile", h.updateProfile)

		r.Get("/api/cart", h.getCart)
		r.Post("/api/cart/items", h.addToCart)
		r.Patch("/api/cart/lines/{id}", h.updateLine)
		r.Delete("/api/cart/lines/{id}", h.removeLine)

		r.Get("/api/delivery", h.getDelivery)
		r.Put("/api/delivery", h.setDelivery)
		r.Patch("/api/delivery", h.setDeliveryField)

		r.Post("/api/orders", h.placeOrder)
		r.Get("/api/orders/pending", h.pendingOrders)
		r.Get("/api/orders/history", h.orderHistory)
		r.Post("/api/orders/{id}/received", h.confirmReceipt)

		r.Get("/api/favorites", h.listFavorites)
		r.Post("/api/favorites/{itemId}/toggle", h.toggleFavorite)
	})

	return r
}

// --- session plumbing ---

type ctxKey struct{}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		sess, ok := h.sessions.Get(token)
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid session token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *service.Session {
	return r.Context().Value(ctxKey{}).(*service.Session)
}

// --- wire types ---

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// userResponse keeps the backend's field vocabulary (nom, prenom, favoris)
// so the screens stay unchanged. The password never leaves the service.
type userResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	LastName  string   `json:"nom"`
	FirstName string   `json:"prenom"`
	Photo     string   `json:"photo,omitempty"`
	Favorites []string `json:"favoris"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Photo:     u.Photo,
		Favorites: u.Favorites,
	}
}

type updateProfileRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	LastName  *string `json:"nom"`
	FirstName *string `json:"prenom"`
	Photo     *string `json:"photo"`
}

type itemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"categorie"`
	Allergens   []string        `json:"allergenes,omitempty"`
}

func toItemResponse(it domain.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Image:       it.Image,
		Description: it.Description,
		Category:    it.Category,
		Allergens:   it.Allergens,
	}
}

type addToCartRequest struct {
	ItemID string `json:"itemId"`
}

type updateLineRequest struct {
	Quantity int `json:"quantite"`
}

type cartLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	Quantity  int             `json:"quantite"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

type deliveryPayload struct {
	PostalCode string `json:"postalCode"`
	Building   string `json:"building"`
	Room       string `json:"room"`
}

type setDeliveryFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type orderItemResponse struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantite"`
}

type orderResponse struct {
	ID       string              `json:"id"`
	Items    []orderItemResponse `json:"items"`
	Total    decimal.Decimal     `json:"total"`
	Date     time.Time           `json:"date"`
	Status   string              `json:"status"`
	Delivery deliveryPayload     `json:"livraison"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return orderResponse{
		ID:     o.ID,
		Items:  items,
		Total:  o.Total,
		Date:   o.Date,
		Status: string(o.Status),
		Delivery: deliveryPayload{
			PostalCode: o.Delivery.PostalCode,
			Building:   o.Delivery.Building,
			Room:       o.Delivery.Room,
		},
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

type favoritesResponse struct {
	Favorites []string `json:"favoris"`
}

// --- handlers ---

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sess, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, User: toUserResponse(sess.User())})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(sessionFrom(r).Token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(sessionFrom(r).User()))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), sess.User().ID, domain.UserChanges{
		Email:     req.Email,
		Password:  req.Password,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Photo:     req.Photo,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess.SetUser(user)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Item
		err   error
	)
	if category := r.URL.Query().Get("categorie"); category != "" {
		items, err = h.catalog.ByCategory(r.Context(), category)
	} else {
		items, err = h.catalog.Items(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Item(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	lines, err := sess.Cart.Snapshot(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	priced, total, err := service.PriceCart(r.Context(), h.catalog, lines)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := cartResponse{Lines: make([]cartLineResponse, len(priced)), Total: total}
	for i, p := range priced {
		out.Lines[i] = cartLineResponse{
			ID:        p.Line.ID,
			ItemID:    p.Line.ItemID,
			Quantity:  p.Line.Quantity,
			Name:      p.Item.Name,
			Price:     p.Item.Price,
			LineTotal: p.LineTotal,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "itemId is required"})
		return
	}

	if err := sessionFrom(r).Cart.Add(r.Context(), req.ItemID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	var req updateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := sessionFrom(r).Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r).Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	info := sessionFrom(r).Delivery.Snapshot()
	writeJSON(w, http.StatusOK, deliveryPayload{
		PostalCode: info.PostalCode,
		Building:   info.Building,
		Room:       info.Room,
	})
}

func (h *Handler) setDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sessionFrom(r).Delivery.Set(domain.DeliveryInfo{
		PostalCode: req.PostalCode,
		Building:   req.Building,
		Room:       req.Room,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setDeliveryField(w http.ResponseWriter, r *http.Request) {
	var req setDeliveryFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := sessionFrom(r).Delivery.SetField(req.Field, req.Value); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := sessionFrom(r).Orders.PlaceOrder(r.Context())
	if err != nil && errors.Is(err, service.ErrCartClearIncomplete) {
		// The order exists; the leftover cart lines stay visible on the
		// next cart read.
		h.log.Warn("cart clear incomplete after order", "order", order.ID, "error", err)
		writeJSON(w, http.StatusCreated, toOrderResponse(*order))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if order == nil {
		// Empty cart: nothing placed.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

func (h *Handler) pendingOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Orders.Refresh(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(sess.Orders.Pending()))
}

// orderHistory truncates to the most recent ?limit= entries. Truncation
// lives here, not in the store.
func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Orders.Refresh(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	history := sess.Orders.History()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		if limit < len(history) {
			history = history[len(history)-limit:]
		}
	}
	writeJSON(w, http.StatusOK, toOrderResponses(history))
}

func (h *Handler) confirmReceipt(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r).Orders.ConfirmReceipt(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: sessionFrom(r).Favorites.List()})
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	favorites, err := sess.Favorites.Toggle(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess.SetFavorites(favorites)
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
}

// --- helpers ---

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrUnknownDeliveryField):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, backend.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "backend request failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}
