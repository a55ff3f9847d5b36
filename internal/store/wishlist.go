package store

import (
	"context"

	"github.com/phrazzld/scent-api/internal/domain"
)

// WishlistSnapshotStore persists the saved wishlist of each user.
type WishlistSnapshotStore interface {
	// Load returns the saved items, or an empty slice if none were saved.
	Load(ctx context.Context, email string) ([]domain.LineItem, error)
	Save(ctx context.Context, email string, items []domain.LineItem) error
}
