package store

import (
	"context"

	"github.com/phrazzld/scent-api/internal/domain"
)

// OrderStore persists a user's order history.
type OrderStore interface {
	// ListByEmail returns the user's orders, newest first. A user without
	// orders gets an empty slice.
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)

	// Add records order as the user's newest order.
	Add(ctx context.Context, email string, order *domain.Order) error
}
