package api

import (
	"net/http"

	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/checkout"
	"github.com/phrazzld/scent-api/internal/domain"
)

// OrderHandler places and lists orders.
type OrderHandler struct {
	sessions *SessionResolver
	checkout *checkout.Service
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(sessions *SessionResolver, checkout *checkout.Service) *OrderHandler {
	return &OrderHandler{sessions: sessions, checkout: checkout}
}

// Checkout handles POST /api/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var order *domain.Order
	notes, err := recordNotifications(sess, func() error {
		var err error
		order, err = h.checkout.PlaceOrder(r.Context(), sess)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CheckoutResponse{
		Order:         order,
		Cart:          newCartBody(sess.Cart.View()),
		Notifications: notes,
	})
}

// List handles GET /api/orders?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	orders, err := h.checkout.Orders(r.Context(), sess.Email(), status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, OrdersResponse{Orders: orders})
}
