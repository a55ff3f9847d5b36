package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/scent-api/internal/store"
)

// KVStore is a map guarded by a mutex. Values are copied on the way in and
// out so callers cannot alias stored bytes.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ store.KeyValueStore = (*KVStore)(nil)

// NewKVStore returns an empty KVStore.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// Get implements store.KeyValueStore.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return bytes.Clone(v), nil
}

// Set implements store.KeyValueStore.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = bytes.Clone(value)
	s.mu.Unlock()
	return nil
}

// Delete implements store.KeyValueStore.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Keys implements store.KeyValueStore.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

// Update implements store.KeyValueStore. The write lock is held while fn
// runs, so fn must not call back into the store.
func (s *KVStore) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, found := s.data[key]
	next, err := fn(bytes.Clone(current), found)
	if err != nil {
		return err
	}
	s.data[key] = bytes.Clone(next)
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
