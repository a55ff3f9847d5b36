package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/scent-api/internal/store"
)

// getJSON decodes the value under key into v. It reports false when the
// key is absent.
func getJSON(ctx context.Context, kv store.KeyValueStore, key string, v any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", store.ErrCorruptValue, key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, kv store.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}

// updateJSON runs a read-modify-write of the JSON value under key. A
// missing key decodes as the zero value of T.
func updateJSON[T any](ctx context.Context, kv store.KeyValueStore, key string, fn func(current T) (T, error)) error {
	return kv.Update(ctx, key, func(raw []byte, found bool) ([]byte, error) {
		var current T
		if found && len(raw) > 0 {
			if err := json.Unmarshal(raw, &current); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", store.ErrCorruptValue, key, err)
			}
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// getString returns the plain string under key, or "" when absent.
func getString(ctx context.Context, kv store.KeyValueStore, key string) (string, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
