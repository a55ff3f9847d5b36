package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/session"
)

// CartHandler serves the caller's cart.
type CartHandler struct {
	sessions *SessionResolver
	catalog  *catalog.Catalog
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(sessions *SessionResolver, c *catalog.Catalog) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: c}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(*session.Session) error { return nil })
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	item, err := resolveItem(h.catalog, req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.mutate(w, r, func(sess *session.Session) error {
		return sess.Cart.Add(item)
	})
}

// UpdateItem handles PUT /api/cart/items/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	h.mutate(w, r, func(sess *session.Session) error {
		sess.Cart.SetQuantity(id, *req.Quantity)
		return nil
	})
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mutate(w, r, func(sess *session.Session) error {
		sess.Cart.Remove(id)
		return nil
	})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *session.Session) error {
		sess.Cart.Clear()
		return nil
	})
}

func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	notes, err := recordNotifications(sess, func() error { return fn(sess) })
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CartResponse{
		CartBody:      newCartBody(sess.Cart.View()),
		Notifications: notes,
	})
}

// resolveItem turns an add request into a line item, looking up the
// catalog when a product ID is given.
func resolveItem(c *catalog.Catalog, req AddItemRequest) (domain.LineItem, error) {
	if req.ProductID != "" {
		p, err := c.Get(req.ProductID)
		if err != nil {
			return domain.LineItem{}, err
		}
		return p.LineItem(), nil
	}
	item := req.lineItem()
	if err := item.Validate(); err != nil {
		return domain.LineItem{}, err
	}
	return item, nil
}
