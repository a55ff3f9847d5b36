// Package checkout turns a session's cart into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/session"
	"github.com/phrazzld/scent-api/internal/store"
)

// ErrEmptyCart is returned when checking out a cart without items.
var ErrEmptyCart = errors.New("cart is empty")

// OrderPlacedMessage is emitted after a successful checkout.
const OrderPlacedMessage = "Order placed successfully!"

// OrderFailedMessage is emitted when the order cannot be saved.
const OrderFailedMessage = "Failed to place order"

// Service places and lists orders.
type Service struct {
	orders store.OrderStore
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a checkout Service.
func NewService(orders store.OrderStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orders: orders,
		now:    time.Now,
		logger: logger.With(slog.String("component", "checkout_service")),
	}
}

// PlaceOrder records the session's cart as a new processing order, then
// takes the ordered lines out of the cart through its store. Checkouts of
// one session run one at a time, and the cart is left untouched when the
// order cannot be saved.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session) (*domain.Order, error) {
	unlock := sess.LockCheckout()
	defer unlock()

	items := sess.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := domain.NewOrder(items, s.now())
	if err != nil {
		return nil, err
	}
	email := sess.Email()
	if err := s.orders.Add(ctx, email, order); err != nil {
		s.logger.Error("failed to save order",
			"error", redact.Error(err),
			"user_id", sess.UserID)
		notify.Error(sess.Notifications, OrderFailedMessage)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	sess.Cart.Settle(items)
	notify.Success(sess.Notifications, OrderPlacedMessage)

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", sess.UserID,
		"items", len(order.Items),
		"total", order.Total.StringFixed(2))
	return order, nil
}

// Orders lists the orders saved under email, newest first. A non-empty
// status keeps only orders in that status.
func (s *Service) Orders(ctx context.Context, email string, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidOrderStatus
	}
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if status == "" {
		return orders, nil
	}
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}
