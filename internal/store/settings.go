package store

import (
	"context"

	"github.com/phrazzld/scent-api/internal/domain"
)

// SettingsStore persists account preferences.
type SettingsStore interface {
	// Get returns the saved settings, or domain.DefaultSettings when the
	// user never saved any.
	Get(ctx context.Context, email string) (domain.Settings, error)
	Save(ctx context.Context, email string, settings domain.Settings) error
}
