package store

import "context"

// UpdateFn computes the next value of a key from its current value.
// found is false when the key is absent. Returning an error aborts the
// update and leaves the key unchanged.
type UpdateFn func(current []byte, found bool) (next []byte, err error)

// KeyValueStore is the storage primitive behind every repository.
type KeyValueStore interface {
	// Get returns the value under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Update atomically replaces the value under key with fn's result.
	Update(ctx context.Context, key string, fn UpdateFn) error
}
