package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/phrazzld/scent-api/internal/store"
)

// KVStore implements store.KeyValueStore over the kv_entries table.
type KVStore struct {
	db *sql.DB
}

var _ store.KeyValueStore = (*KVStore)(nil)

// NewKVStore returns a KVStore on db, which must already be migrated.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get implements store.KeyValueStore.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, key)
}

func get(ctx context.Context, q store.DBTX, key string) ([]byte, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, mapError("get", key, err)
	}
	return []byte(value), nil
}

// Set implements store.KeyValueStore.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

func set(ctx context.Context, q store.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value))
	return mapError("set", key, err)
}

// Delete implements store.KeyValueStore.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return mapError("delete", key, err)
}

// Keys implements store.KeyValueStore. LIKE is case-insensitive in SQLite,
// so the prefix is matched with substr instead.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv_entries WHERE substr(key, 1, ?) = ? ORDER BY key`,
		utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, mapError("keys", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, mapError("keys", prefix, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("keys", prefix, err)
	}
	return keys, nil
}

// Update implements store.KeyValueStore inside a transaction. With the
// single-connection pool from Open, transactions never interleave.
func (s *KVStore) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := get(ctx, tx, key)
		found := true
		if errors.Is(err, store.ErrKeyNotFound) {
			found, err = false, nil
		}
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return set(ctx, tx, key, next)
	})
}

// mapError converts driver errors to store errors. A nil err stays nil.
func mapError(op, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrKeyNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return store.NewStoreError("kv_entry", op, fmt.Sprintf("key %q", key), err)
	}
}
