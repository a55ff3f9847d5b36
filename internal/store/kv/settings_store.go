package kv

import (
	"context"
	"errors"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

// SettingsStore keeps account preferences under store.SettingsKey.
type SettingsStore struct {
	kv store.KeyValueStore
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a SettingsStore backed by kv.
func NewSettingsStore(kv store.KeyValueStore) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Get implements store.SettingsStore.
func (s *SettingsStore) Get(ctx context.Context, email string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if _, err := getJSON(ctx, s.kv, store.SettingsKey(email), &settings); err != nil {
		return domain.Settings{}, store.NewStoreError("settings", "get", "failed to load settings", err)
	}
	return settings, nil
}

// Save implements store.SettingsStore.
func (s *SettingsStore) Save(ctx context.Context, email string, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return store.NewStoreError("settings", "save", "invalid settings", errors.Join(store.ErrInvalidEntity, err))
	}
	if err := setJSON(ctx, s.kv, store.SettingsKey(email), settings); err != nil {
		return store.NewStoreError("settings", "save", "failed to save settings", err)
	}
	return nil
}
