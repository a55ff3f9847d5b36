package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/scent-api/internal/redact"
)

// Connection defaults of the Postgres service container used in CI.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "storefront_test"
	StandardCIOptions  = "sslmode=disable"
)

// TestDatabaseURL returns the Postgres URL for integration tests, or ""
// when none is configured. Under CI the credentials and missing parts are
// replaced with the standard service container values.
func TestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := StandardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("failed to standardize database URL", "error", redact.Error(err))
		}
		return dbURL
	}
	if standardized != dbURL && logger != nil {
		logger.Info("standardized database URL for CI", "url", redact.String(standardized))
	}
	return standardized
}

// StandardizeDatabaseURL rewrites a postgres URL to use the standard CI
// credentials, port, database and options where they are missing.
// Other schemes are returned unchanged.
func StandardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	out := *parsed
	out.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if parsed.Port() == "" && (host == "" || host == "localhost" || host == "127.0.0.1") {
		if host == "" {
			host = "localhost"
		}
		out.Host = host + ":" + StandardCIPort
	}
	if strings.TrimPrefix(parsed.Path, "/") == "" {
		out.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		out.RawQuery = StandardCIOptions
	}
	return out.String(), nil
}
