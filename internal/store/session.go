package store

import (
	"context"

	"github.com/phrazzld/scent-api/internal/domain"
)

// SessionStore persists the login state of one client: the current user,
// the logged-in flag, the bearer token and the remembered email.
type SessionStore interface {
	// CurrentUser returns the recorded session user or ErrNoCurrentUser.
	CurrentUser(ctx context.Context) (*domain.User, error)
	SetCurrentUser(ctx context.Context, user *domain.User) error
	ClearCurrentUser(ctx context.Context) error

	IsLoggedIn(ctx context.Context) (bool, error)
	SetLoggedIn(ctx context.Context, loggedIn bool) error

	// Token returns the stored bearer token or "" when none is stored.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error

	// Remember records email for prefilling the next login.
	Remember(ctx context.Context, email string) error
	// Forget removes the remember-me flag and the remembered email.
	Forget(ctx context.Context) error
	// RememberedEmail returns the remembered email or "" when none is stored.
	RememberedEmail(ctx context.Context) (string, error)
}

// SessionStoreFactory hands out the SessionStore of a client.
type SessionStoreFactory interface {
	ForClient(clientID string) SessionStore
}
