package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const (
	getQuery    = `SELECT value FROM kv_entries WHERE key = $1`
	upsertQuery = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteQuery = `DELETE FROM kv_entries WHERE key = $1`
	keysQuery   = `SELECT key FROM kv_entries WHERE key LIKE $1 ESCAPE '\' ORDER BY key`
	// Serializes read-modify-write cycles on one key, including the first
	// write of a key that has no row to lock yet.
	lockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// Get implements store.KeyValueStore.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, key)
}

func get(ctx context.Context, q store.DBTX, key string) ([]byte, error) {
	var value string
	if err := q.QueryRowContext(ctx, getQuery, key).Scan(&value); err != nil {
		return nil, wrap("get", key, err)
	}
	return []byte(value), nil
}

// Set implements store.KeyValueStore.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

func set(ctx context.Context, q store.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, upsertQuery, key, string(value))
	return wrap("set", key, err)
}

// Delete implements store.KeyValueStore.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, deleteQuery, key)
	return wrap("delete", key, err)
}

// Keys implements store.KeyValueStore.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, keysQuery, likePrefix(prefix))
	if err != nil {
		return nil, wrap("keys", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, wrap("keys", prefix, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("keys", prefix, err)
	}
	return keys, nil
}

// Update implements store.KeyValueStore.
func (s *KVStore) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, lockQuery, key); err != nil {
			return wrap("lock", key, err)
		}

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

// likePrefix escapes LIKE metacharacters; keys such as "orders_x" contain
// underscores that would otherwise match any character.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrKeyNotFound) ||
		errors.Is(mapped, context.Canceled) ||
		errors.Is(mapped, context.DeadlineExceeded) {
		return mapped
	}
	return store.NewStoreError("kv_entry", op, fmt.Sprintf("key %q", key), mapped)
}
