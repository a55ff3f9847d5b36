package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/platform/logger"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/session"
	"github.com/phrazzld/scent-api/internal/store"
)

// ErrNotInWishlist is returned when a route needs a saved item that is absent.
var ErrNotInWishlist = errors.New("item is not in the wishlist")

// WishlistHandler serves the caller's wishlist. Every mutation is followed
// by a save of the wishlist snapshot.
type WishlistHandler struct {
	sessions  *SessionResolver
	catalog   *catalog.Catalog
	snapshots store.WishlistSnapshotStore
	logger    *slog.Logger
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(
	sessions *SessionResolver,
	c *catalog.Catalog,
	snapshots store.WishlistSnapshotStore,
	logger *slog.Logger,
) *WishlistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishlistHandler{
		sessions:  sessions,
		catalog:   c,
		snapshots: snapshots,
		logger:    logger.With("component", "wishlist_handler"),
	}
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, WishlistResponse{
		WishlistBody:  newWishlistBody(sess.Wishlist.View()),
		Notifications: []notify.Notification{},
	})
}

// Contains handles GET /api/wishlist/items/{id}.
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	shared.RespondWithJSON(w, r, http.StatusOK, ContainsResponse{
		ID:         id,
		InWishlist: sess.Wishlist.Contains(id),
	})
}

// AddItem handles POST /api/wishlist/items.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	item, err := resolveItem(h.catalog, req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.mutate(w, r, func(sess *session.Session) (*bool, error) {
		return nil, sess.Wishlist.Add(item)
	})
}

// Toggle handles POST /api/wishlist/items/{id}/toggle. A saved item is
// removed; otherwise the catalog product with that ID is added.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mutate(w, r, func(sess *session.Session) (*bool, error) {
		item, ok := sess.Wishlist.Get(id)
		if !ok {
			p, err := h.catalog.Get(id)
			if err != nil {
				return nil, err
			}
			item = p.LineItem()
		}
		saved, err := sess.Wishlist.Toggle(item)
		return &saved, err
	})
}

// RemoveItem handles DELETE /api/wishlist/items/{id}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mutate(w, r, func(sess *session.Session) (*bool, error) {
		sess.Wishlist.Remove(id)
		return nil, nil
	})
}

// Clear handles DELETE /api/wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *session.Session) (*bool, error) {
		sess.Wishlist.Clear()
		return nil, nil
	})
}

// MoveToCart handles POST /api/wishlist/items/{id}/move-to-cart. The item
// is added to the cart and stays saved.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	notes, err := recordNotifications(sess, func() error {
		item, ok := sess.Wishlist.Get(id)
		if !ok {
			return ErrNotInWishlist
		}
		return sess.Cart.Add(item)
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MoveToCartResponse{
		Cart:          newCartBody(sess.Cart.View()),
		Wishlist:      newWishlistBody(sess.Wishlist.View()),
		Notifications: notes,
	})
}

func (h *WishlistHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	fn func(*session.Session) (*bool, error),
) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var saved *bool
	notes, err := recordNotifications(sess, func() error {
		var err error
		saved, err = fn(sess)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.save(r, sess)

	shared.RespondWithJSON(w, r, http.StatusOK, WishlistResponse{
		WishlistBody:  newWishlistBody(sess.Wishlist.View()),
		Saved:         saved,
		Notifications: notes,
	})
}

// save writes the wishlist snapshot. The in-memory wishlist stays
// authoritative for the session when the write fails.
func (h *WishlistHandler) save(r *http.Request, sess *session.Session) {
	items := sess.Wishlist.Items()
	if err := h.snapshots.Save(r.Context(), sess.Email(), items); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to save wishlist snapshot",
			"user_id", sess.UserID,
			"items", len(items),
			"error", redact.Error(err))
	}
}

