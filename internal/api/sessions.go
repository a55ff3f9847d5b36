package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/service/auth"
	"github.com/phrazzld/scent-api/internal/session"
)

// UserLookup loads the user an authenticated request belongs to.
// *account.Service implements it.
type UserLookup interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// SessionResolver finds the live session of the authenticated caller,
// opening one on first use.
type SessionResolver struct {
	users    UserLookup
	sessions *session.Manager
}

// NewSessionResolver creates a SessionResolver.
func NewSessionResolver(users UserLookup, sessions *session.Manager) *SessionResolver {
	return &SessionResolver{users: users, sessions: sessions}
}

var errNoUserInContext = fmt.Errorf("%w: no authenticated user in request context", auth.ErrMissingToken)

// Resolve returns the caller's session. It must run behind the auth middleware.
func (s *SessionResolver) Resolve(r *http.Request) (*session.Session, error) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		return nil, errNoUserInContext
	}
	if sess, ok := s.sessions.Get(userID); ok {
		return sess, nil
	}
	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return s.sessions.Open(r.Context(), user)
}

// Refresh reopens the session of user so it picks up a changed email.
func (s *SessionResolver) Refresh(ctx context.Context, user *domain.User) error {
	_, err := s.sessions.Open(ctx, user)
	return err
}

// recordNotifications runs fn and returns what the session's stores
// emitted meanwhile. Calls on one session run one at a time, so a response
// never carries another request's notifications.
func recordNotifications(sess *session.Session, fn func() error) ([]notify.Notification, error) {
	rec := notify.NewRecorder()
	err := sess.Exclusive(func() error {
		unsubscribe := sess.Notifications.Subscribe(rec)
		defer unsubscribe()
		return fn()
	})
	return rec.Drain(), err
}
