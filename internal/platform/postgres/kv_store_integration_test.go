//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/ciutil"
	"github.com/phrazzld/scent-api/internal/platform/migrations"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/phrazzld/scent-api/internal/store/kvtest"
	"github.com/stretchr/testify/require"
)

// Each subtest gets its own key namespace inside a shared migrated database.
type prefixed struct {
	store.KeyValueStore
	prefix string
}

func (p prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.KeyValueStore.Get(ctx, p.prefix+key)
}

func (p prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.KeyValueStore.Set(ctx, p.prefix+key, value)
}

func (p prefixed) Delete(ctx context.Context, key string) error {
	return p.KeyValueStore.Delete(ctx, p.prefix+key)
}

func (p prefixed) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	return p.KeyValueStore.Update(ctx, p.prefix+key, fn)
}

func (p prefixed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.KeyValueStore.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = k[len(p.prefix):]
	}
	return keys, nil
}

func TestKVStoreConformance(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	url := ciutil.TestDatabaseURL(logger)
	if url == "" {
		t.Skip("no test database configured")
	}

	ctx := context.Background()
	db, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, migrations.DriverPostgres, logger))

	kv := NewKVStore(db)
	kvtest.Run(t, func(t *testing.T) store.KeyValueStore {
		p := "test_" + uuid.NewString() + "/"
		t.Cleanup(func() {
			keys, _ := kv.Keys(context.Background(), p)
			for _, k := range keys {
				_ = kv.Delete(context.Background(), k)
			}
		})
		return prefixed{KeyValueStore: kv, prefix: p}
	})
}
