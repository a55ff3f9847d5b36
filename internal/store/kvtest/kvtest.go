// Package kvtest holds a conformance suite that every store.KeyValueStore
// backend runs from its own tests.
package kvtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/scent-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.KeyValueStore

// Run exercises the store.KeyValueStore contract against stores from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "absent")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, store.KeyToken, []byte("abc")))
		got, err := s.Get(ctx, store.KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		require.NoError(t, s.Set(ctx, store.KeyToken, []byte("def")))
		got, err = s.Get(ctx, store.KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "def", string(got))
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "empty", []byte{}))
		got, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)

		assert.NoError(t, s.Delete(ctx, "never-set"))
	})

	t.Run("keys by prefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, k := range []string{
			store.OrdersKey("b@example.com"),
			store.OrdersKey("a@example.com"),
			store.WishlistKey("a@example.com"),
			store.KeyUsers,
		} {
			require.NoError(t, s.Set(ctx, k, []byte("[]")))
		}

		keys, err := s.Keys(ctx, store.PrefixOrders)
		require.NoError(t, err)
		assert.Equal(t, []string{"orders_a@example.com", "orders_b@example.com"}, keys)

		all, err := s.Keys(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 4)

		none, err := s.Keys(ctx, "settings_")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update creates and replaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		err := s.Update(ctx, "counter", func(cur []byte, found bool) ([]byte, error) {
			assert.False(t, found)
			return []byte("1"), nil
		})
		require.NoError(t, err)

		err = s.Update(ctx, "counter", func(cur []byte, found bool) ([]byte, error) {
			assert.True(t, found)
			assert.Equal(t, "1", string(cur))
			return []byte("2"), nil
		})
		require.NoError(t, err)

		got, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, "2", string(got))
	})

	t.Run("update error leaves value untouched", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("keep")))

		sentinel := errors.New("abort")
		err := s.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return nil, sentinel })
		assert.ErrorIs(t, err, sentinel)

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "keep", string(got))
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const workers = 8
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Update(ctx, "n", func(cur []byte, found bool) ([]byte, error) {
					n := 0
					if found {
						if _, err := fmt.Sscan(string(cur), &n); err != nil {
							return nil, err
						}
					}
					return []byte(fmt.Sprint(n + 1)), nil
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := s.Get(ctx, "n")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(workers), string(got))
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, s.Set(ctx, "k", []byte("v")))
	})
}
