package kv

import (
	"context"
	"strings"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

const flagTrue = "true"

// SessionStore keeps one client's login state. Keys are scoped by client
// ID so several clients can share a backend; an empty scope uses the bare
// keys.
type SessionStore struct {
	kv    store.KeyValueStore
	scope string
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore for the given client scope.
func NewSessionStore(kv store.KeyValueStore, scope string) *SessionStore {
	return &SessionStore{kv: kv, scope: scope}
}

func (s *SessionStore) key(k string) string {
	return store.ScopedKey(s.scope, k)
}

// CurrentUser implements store.SessionStore.
func (s *SessionStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	found, err := getJSON(ctx, s.kv, s.key(store.KeyCurrentUser), &user)
	if err != nil {
		return nil, store.NewStoreError("session", "current_user", "failed to load current user", err)
	}
	if !found {
		return nil, store.ErrNoCurrentUser
	}
	return &user, nil
}

// SetCurrentUser implements store.SessionStore. The password hash is never
// part of the stored record.
func (s *SessionStore) SetCurrentUser(ctx context.Context, user *domain.User) error {
	if err := setJSON(ctx, s.kv, s.key(store.KeyCurrentUser), user); err != nil {
		return store.NewStoreError("session", "set_current_user", "failed to save current user", err)
	}
	return nil
}

// ClearCurrentUser implements store.SessionStore.
func (s *SessionStore) ClearCurrentUser(ctx context.Context) error {
	return s.delete(ctx, "clear_current_user", store.KeyCurrentUser)
}

// IsLoggedIn implements store.SessionStore.
func (s *SessionStore) IsLoggedIn(ctx context.Context) (bool, error) {
	v, err := getString(ctx, s.kv, s.key(store.KeyLoggedIn))
	if err != nil {
		return false, store.NewStoreError("session", "is_logged_in", "failed to read flag", err)
	}
	return v == flagTrue, nil
}

// SetLoggedIn implements store.SessionStore. Logging out removes the flag.
func (s *SessionStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	if !loggedIn {
		return s.delete(ctx, "set_logged_in", store.KeyLoggedIn)
	}
	return s.set(ctx, "set_logged_in", store.KeyLoggedIn, flagTrue)
}

// Token implements store.SessionStore.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	v, err := getString(ctx, s.kv, s.key(store.KeyToken))
	if err != nil {
		return "", store.NewStoreError("session", "token", "failed to read token", err)
	}
	return v, nil
}

// SetToken implements store.SessionStore. An empty token removes the key.
func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.delete(ctx, "set_token", store.KeyToken)
	}
	return s.set(ctx, "set_token", store.KeyToken, token)
}

// Remember implements store.SessionStore.
func (s *SessionStore) Remember(ctx context.Context, email string) error {
	if err := s.set(ctx, "remember", store.KeyRememberMe, flagTrue); err != nil {
		return err
	}
	return s.set(ctx, "remember", store.KeyRememberedEmail, strings.TrimSpace(email))
}

// Forget implements store.SessionStore.
func (s *SessionStore) Forget(ctx context.Context) error {
	if err := s.delete(ctx, "forget", store.KeyRememberMe); err != nil {
		return err
	}
	return s.delete(ctx, "forget", store.KeyRememberedEmail)
}

// RememberedEmail implements store.SessionStore.
func (s *SessionStore) RememberedEmail(ctx context.Context) (string, error) {
	v, err := getString(ctx, s.kv, s.key(store.KeyRememberedEmail))
	if err != nil {
		return "", store.NewStoreError("session", "remembered_email", "failed to read email", err)
	}
	return v, nil
}

func (s *SessionStore) set(ctx context.Context, op, key, value string) error {
	if err := s.kv.Set(ctx, s.key(key), []byte(value)); err != nil {
		return store.NewStoreError("session", op, "failed to write "+key, err)
	}
	return nil
}

func (s *SessionStore) delete(ctx context.Context, op, key string) error {
	if err := s.kv.Delete(ctx, s.key(key)); err != nil {
		return store.NewStoreError("session", op, "failed to delete "+key, err)
	}
	return nil
}

// SessionStores hands out client-scoped SessionStores over one backend.
type SessionStores struct {
	kv store.KeyValueStore
}

var _ store.SessionStoreFactory = (*SessionStores)(nil)

// NewSessionStores creates a SessionStores backed by kv.
func NewSessionStores(kv store.KeyValueStore) *SessionStores {
	return &SessionStores{kv: kv}
}

// ForClient implements store.SessionStoreFactory.
func (f *SessionStores) ForClient(clientID string) store.SessionStore {
	return NewSessionStore(f.kv, clientID)
}
