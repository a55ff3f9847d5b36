package kv

import (
	"context"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

// WishlistStore keeps saved wishlists under store.WishlistKey.
type WishlistStore struct {
	kv store.KeyValueStore
}

var _ store.WishlistSnapshotStore = (*WishlistStore)(nil)

// NewWishlistStore creates a WishlistStore backed by kv.
func NewWishlistStore(kv store.KeyValueStore) *WishlistStore {
	return &WishlistStore{kv: kv}
}

// Load implements store.WishlistSnapshotStore.
func (s *WishlistStore) Load(ctx context.Context, email string) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if _, err := getJSON(ctx, s.kv, store.WishlistKey(email), &items); err != nil {
		return nil, store.NewStoreError("wishlist", "load", "failed to load wishlist", err)
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

// Save implements store.WishlistSnapshotStore.
func (s *WishlistStore) Save(ctx context.Context, email string, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	if err := setJSON(ctx, s.kv, store.WishlistKey(email), items); err != nil {
		return store.NewStoreError("wishlist", "save", "failed to save wishlist", err)
	}
	return nil
}
