// Package mockbackend is an in-memory stand-in for the external mock REST
// backend (json-server in development). It exists for tests only: it mimics
// the /panier, /commandes, /items and /users resources closely enough to run
// the storefront end to end without a Node process.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cartLine struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantite"`
}

type orderRec struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	Items    json.RawMessage `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Date     time.Time       `json:"date"`
	Status   string          `json:"status"`
	Delivery json.RawMessage `json:"livraison"`
}

type itemRec struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"categorie"`
	Allergens   []string        `json:"allergenes,omitempty"`
}

type userRec struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	LastName  string   `json:"nom"`
	FirstName string   `json:"prenom"`
	Photo     string   `json:"photo,omitempty"`
	Favorites []string `json:"favoris"`
}

type Server struct {
	mu     sync.Mutex
	nextID int
	lines  map[string]cartLine
	orders map[string]orderRec
	items  map[string]itemRec
	users  map[string]userRec

	failDeletes bool
}

func New() *Server {
	return &Server{
		lines:  make(map[string]cartLine),
		orders: make(map[string]orderRec),
		items:  make(map[string]itemRec),
		users:  make(map[string]userRec),
	}
}

// SetFailDeletes makes every DELETE /panier/:id answer 500 until reset,
// to exercise the partial cart-clear path.
func (s *Server) SetFailDeletes(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeletes = fail
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/panier", s.listLines)
	r.Post("/panier", s.createLine)
	r.Patch("/panier/{id}", s.patchLine)
	r.Delete("/panier/{id}", s.deleteLine)

	r.Get("/commandes", s.listOrders)
	r.Post("/commandes", s.createOrder)
	r.Patch("/commandes/{id}", s.patchOrder)

	r.Get("/items", s.listItems)
	r.Post("/items", s.createItem)
	r.Get("/items/{id}", s.getItem)

	r.Get("/users", s.listUsers)
	r.Post("/users", s.createUser)
	r.Get("/users/{id}", s.getUser)
	r.Patch("/users/{id}", s.patchUser)

	return r
}

func (s *Server) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Server) listLines(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := r.URL.Query().Get("userId")
	out := []cartLine{}
	for _, l := range s.lines {
		if userID == "" || l.UserID == userID {
			out = append(out, l)
		}
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) createLine(w http.ResponseWriter, r *http.Request) {
	var line cartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if line.ID == "" {
		line.ID = s.id("line")
	}
	s.lines[line.ID] = line
	respond(w, http.StatusCreated, line)
}

func (s *Server) patchLine(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Quantity *int `json:"quantite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	s.lines[line.ID] = line
	respond(w, http.StatusOK, line)
}

func (s *Server) deleteLine(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDeletes {
		http.Error(w, "injected failure", http.StatusInternalServerError)
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := s.lines[id]; !ok {
		http.NotFound(w, r)
		return
	}
	delete(s.lines, id)
	respond(w, http.StatusOK, map[string]any{})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := r.URL.Query().Get("userId")
	status := r.URL.Query().Get("status")
	out := []orderRec{}
	for _, o := range s.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var o orderRec
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = s.id("order")
	}
	s.orders[o.ID] = o
	respond(w, http.StatusCreated, o)
}

func (s *Server) patchOrder(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Status *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	s.orders[o.ID] = o
	respond(w, http.StatusOK, o)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := r.URL.Query().Get("categorie")
	out := []itemRec{}
	for _, it := range s.items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var it itemRec
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if it.ID == "" {
		it.ID = s.id("item")
	}
	s.items[it.ID] = it
	respond(w, http.StatusCreated, it)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	respond(w, http.StatusOK, it)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []userRec{}
	for _, u := range s.users {
		out = append(out, u)
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u userRec
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.id("user")
	}
	s.users[u.ID] = u
	respond(w, http.StatusCreated, u)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	respond(w, http.StatusOK, u)
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Merge semantics: only the keys present in the body are replaced.
	raw, _ := json.Marshal(u)
	var merged map[string]json.RawMessage
	json.Unmarshal(raw, &merged)
	for k, v := range patch {
		merged[k] = v
	}
	rawMerged, _ := json.Marshal(merged)
	if err := json.Unmarshal(rawMerged, &u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.users[u.ID] = u
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
