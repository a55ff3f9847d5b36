package kv

import (
	"context"
	"errors"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

// OrderStore keeps each user's orders as a JSON list under
// store.OrdersKey, newest first.
type OrderStore struct {
	kv store.KeyValueStore
}

var _ store.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates an OrderStore backed by kv.
func NewOrderStore(kv store.KeyValueStore) *OrderStore {
	return &OrderStore{kv: kv}
}

// ListByEmail implements store.OrderStore.
func (s *OrderStore) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	orders := []domain.Order{}
	if _, err := getJSON(ctx, s.kv, store.OrdersKey(email), &orders); err != nil {
		return nil, store.NewStoreError("order", "list", "failed to load orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Add implements store.OrderStore.
func (s *OrderStore) Add(ctx context.Context, email string, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return store.NewStoreError("order", "add", "invalid order", errors.Join(store.ErrInvalidEntity, err))
	}
	err := updateJSON(ctx, s.kv, store.OrdersKey(email), func(orders []domain.Order) ([]domain.Order, error) {
		next := make([]domain.Order, 0, len(orders)+1)
		next = append(next, *order)
		return append(next, orders...), nil
	})
	if err != nil {
		return store.NewStoreError("order", "add", "failed to append order", err)
	}
	return nil
}
