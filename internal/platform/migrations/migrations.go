package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

// Supported drivers, matching config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Commands accepted by Run.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// NewProvider returns a goose provider for db using the migrations of driver.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	dir, err := fs.Sub(embedded, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("locating %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, dir)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	return Run(ctx, db, driver, CommandUp, logger)
}

// Run executes one migration command and logs its results.
func Run(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	log := logger.With("component", "migrations", "driver", driver, "command", command)

	provider, err := NewProvider(db, driver)
	if err != nil {
		return err
	}

	switch command {
	case CommandUp:
		results, err := provider.Up(ctx)
		for _, r := range results {
			logResult(log, r)
		}
		if err != nil {
			return fmt.Errorf("migration command %q failed: %w", command, err)
		}
		log.Info("migrations applied", "count", len(results))

	case CommandDown:
		result, err := provider.Down(ctx)
		if result != nil {
			logResult(log, result)
		}
		if err != nil {
			return fmt.Errorf("migration command %q failed: %w", command, err)
		}

	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration command %q failed: %w", command, err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				"version", s.Source.Version,
				"path", s.Source.Path,
				"state", string(s.State),
				"applied_at", s.AppliedAt)
		}

	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down or status)", command)
	}
	return nil
}

// Version returns the current schema version of db.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := NewProvider(db, driver)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

func logResult(log *slog.Logger, r *goose.MigrationResult) {
	attrs := []any{
		"version", r.Source.Version,
		"path", r.Source.Path,
		"direction", r.Direction,
		"duration_ms", r.Duration.Milliseconds(),
	}
	if r.Error != nil {
		log.Error("migration failed", append(attrs, "error", r.Error)...)
		return
	}
	log.Info("migration applied", attrs...)
}
