package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scent-api/internal/config"
	"github.com/phrazzld/scent-api/internal/platform/memory"
	"github.com/phrazzld/scent-api/internal/platform/migrations"
	"github.com/phrazzld/scent-api/internal/platform/postgres"
	"github.com/phrazzld/scent-api/internal/platform/sqlite"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/store"
)

// backend is the key-value store selected by database.driver. db is nil
// for the memory driver.
type backend struct {
	kv     store.KeyValueStore
	db     *sql.DB
	driver string
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// openDatabase opens the SQL database behind a postgres or sqlite driver.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case migrations.DriverPostgres:
		return postgres.Open(ctx, cfg.URL)
	case migrations.DriverSQLite:
		return sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("driver %q has no SQL database", cfg.Driver)
	}
}

// openBackend opens the configured backend and, for SQL drivers, applies
// pending migrations.
func openBackend(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*backend, error) {
	if cfg.Driver == "memory" {
		log.Warn("using in-memory storage; data is lost on restart")
		return &backend{kv: memory.NewKVStore(), driver: cfg.Driver}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Error("failed to open database",
			"driver", cfg.Driver,
			"error", redact.Error(err))
		return nil, err
	}
	if err := migrations.Up(ctx, db, cfg.Driver, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	b := &backend{db: db, driver: cfg.Driver}
	if cfg.Driver == migrations.DriverPostgres {
		b.kv = postgres.NewKVStore(db)
	} else {
		b.kv = sqlite.NewKVStore(db)
	}
	log.Info("database ready", "driver", cfg.Driver)
	return b, nil
}
