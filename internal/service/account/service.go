// Package account implements registration, login, and the profile and
// settings pages of a storefront customer.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/authclient"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/service/auth"
	"github.com/phrazzld/scent-api/internal/store"
)

// DefaultMinPasswordLength applies when Dependencies.MinPasswordLength is zero.
const DefaultMinPasswordLength = 8

// RemoteAuthenticator checks credentials against an external login service.
// *authclient.Client implements it.
type RemoteAuthenticator interface {
	Login(ctx context.Context, email, password string) (*authclient.LoginResult, error)
}

// SessionCloser discards the in-memory state of a logged-out user.
type SessionCloser interface {
	Drop(userID uuid.UUID)
}

// Dependencies are the collaborators of a Service. Remote and Sessions are
// optional.
type Dependencies struct {
	Users             store.UserStore
	Sessions          store.SessionStoreFactory
	Orders            store.OrderStore
	Wishlists         store.WishlistSnapshotStore
	Settings          store.SettingsStore
	Tokens            auth.JWTService
	Hasher            auth.PasswordHasher
	Verifier          auth.PasswordVerifier
	Remote            RemoteAuthenticator
	Live              SessionCloser
	MinPasswordLength int
	Logger            *slog.Logger
}

// Service implements the account operations.
type Service struct {
	users       store.UserStore
	sessions    store.SessionStoreFactory
	orders      store.OrderStore
	wishlists   store.WishlistSnapshotStore
	settings    store.SettingsStore
	tokens      auth.JWTService
	hasher      auth.PasswordHasher
	verifier    auth.PasswordVerifier
	remote      RemoteAuthenticator
	live        SessionCloser
	minPassword int
	logger      *slog.Logger
}

// NewService validates deps and returns a Service.
func NewService(deps Dependencies) (*Service, error) {
	required := map[string]any{
		"users":     deps.Users,
		"sessions":  deps.Sessions,
		"orders":    deps.Orders,
		"wishlists": deps.Wishlists,
		"settings":  deps.Settings,
		"tokens":    deps.Tokens,
		"hasher":    deps.Hasher,
		"verifier":  deps.Verifier,
	}
	for name, dep := range required {
		if dep == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingDependency, name)
		}
	}

	minPassword := deps.MinPasswordLength
	if minPassword <= 0 {
		minPassword = DefaultMinPasswordLength
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		users:       deps.Users,
		sessions:    deps.Sessions,
		orders:      deps.Orders,
		wishlists:   deps.Wishlists,
		settings:    deps.Settings,
		tokens:      deps.Tokens,
		hasher:      deps.Hasher,
		verifier:    deps.Verifier,
		remote:      deps.Remote,
		live:        deps.Live,
		minPassword: minPassword,
		logger:      log.With(slog.String("component", "account_service")),
	}, nil
}

// RegisterInput is the content of the registration form.
type RegisterInput struct {
	Email           string
	Username        string
	Phone           string
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
	// Name is the display name used in the greeting.
	Name     string
	Greeting string
}

// Register creates an account and logs the client in as the new user.
func (s *Service) Register(ctx context.Context, clientID string, in RegisterInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordsDoNotMatch
	}
	if !in.AgreeToTerms {
		return nil, ErrTermsNotAccepted
	}
	if len(in.Password) < s.minPassword {
		return nil, &PasswordLengthError{Min: s.minPassword}
	}
	if !domain.ValidateEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, NewAccountServiceError("register", "failed to hash password", err)
	}
	user, err := domain.NewUser(email, username, in.Phone, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration rejected: user exists")
			return nil, ErrUserExists
		}
		s.logger.Error("failed to create user", "error", redact.Error(err))
		return nil, NewAccountServiceError("register", "failed to create user", err)
	}

	token, err := s.startSession(ctx, clientID, user)
	if err != nil {
		return nil, NewAccountServiceError("register", "failed to start session", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return &AuthResult{
		User:     user,
		Token:    token,
		Name:     user.DisplayName(),
		Greeting: "Registration successful! Welcome to PERFUME.",
	}, nil
}

// LoginInput is the content of the login form.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// Login verifies the credentials, locally or through the remote login
// service when one is configured, and records the client's session. A
// rejection from the remote service is returned as *authclient.RemoteError.
func (s *Service) Login(ctx context.Context, clientID string, in LoginInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	var (
		user *domain.User
		name string
		err  error
	)
	if s.remote != nil {
		user, name, err = s.loginRemote(ctx, email, in.Password)
	} else {
		user, err = s.loginLocal(ctx, email, in.Password)
		if user != nil {
			name = user.DisplayName()
		}
	}
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "User"
	}

	token, err := s.startSession(ctx, clientID, user)
	if err != nil {
		return nil, NewAccountServiceError("login", "failed to start session", err)
	}

	session := s.sessions.ForClient(clientID)
	if in.RememberMe {
		err = session.Remember(ctx, in.Email)
	} else {
		err = session.Forget(ctx)
	}
	if err != nil {
		return nil, NewAccountServiceError("login", "failed to update remember me", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "remote", s.remote != nil)
	return &AuthResult{
		User:     user,
		Token:    token,
		Name:     name,
		Greeting: fmt.Sprintf("Welcome back, %s!", name),
	}, nil
}

func (s *Service) loginLocal(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, NewAccountServiceError("login", "failed to look up user", err)
	}
	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Error("password verification failed", "error", redact.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

type remoteUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// loginRemote lets the remote service judge the credentials. A remote user
// unknown to the local store is provisioned so that orders and settings
// have an owner.
func (s *Service) loginRemote(ctx context.Context, email, password string) (*domain.User, string, error) {
	res, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if res.Token == "" {
		return nil, "", ErrRemoteLoginMalformed
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, res.Name, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, "", NewAccountServiceError("login", "failed to look up user", err)
	}

	var ru remoteUser
	if len(res.User) > 0 {
		if err := json.Unmarshal(res.User, &ru); err != nil {
			s.logger.Debug("ignoring malformed remote user payload", "error", redact.Error(err))
		}
	}
	username := strings.TrimSpace(ru.Username)
	if username == "" {
		username = strings.TrimSpace(ru.Name)
	}
	if username == "" {
		username = res.Name
	}
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	// The local hash is random, so a provisioned user can only sign in
	// through the remote service.
	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, "", NewAccountServiceError("login", "failed to hash password", err)
	}
	user, err = domain.NewUser(email, username, ru.Phone, hash)
	if err != nil {
		return nil, "", NewAccountServiceError("login", "remote user is invalid", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", NewAccountServiceError("login", "failed to provision remote user", err)
	}
	s.logger.Info("provisioned remote user", "user_id", user.ID)
	return user, res.Name, nil
}

func (s *Service) startSession(ctx context.Context, clientID string, user *domain.User) (string, error) {
	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}
	session := s.sessions.ForClient(clientID)
	if err := session.SetToken(ctx, token); err != nil {
		return "", err
	}
	if err := session.SetCurrentUser(ctx, user); err != nil {
		return "", err
	}
	if err := session.SetLoggedIn(ctx, true); err != nil {
		return "", err
	}
	return token, nil
}

// Logout clears the client's session record and discards the user's
// in-memory cart and wishlist.
func (s *Service) Logout(ctx context.Context, clientID string, userID uuid.UUID) error {
	session := s.sessions.ForClient(clientID)
	steps := []func(context.Context) error{
		session.ClearCurrentUser,
		func(ctx context.Context) error { return session.SetLoggedIn(ctx, false) },
		func(ctx context.Context) error { return session.SetToken(ctx, "") },
		session.Forget,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return NewAccountServiceError("logout", "failed to clear session", err)
		}
	}
	if s.live != nil && userID != uuid.Nil {
		s.live.Drop(userID)
	}
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// RememberedEmail returns the email saved by a remember-me login, or "".
func (s *Service) RememberedEmail(ctx context.Context, clientID string) (string, error) {
	email, err := s.sessions.ForClient(clientID).RememberedEmail(ctx)
	if err != nil {
		return "", NewAccountServiceError("remembered_email", "failed to read session", err)
	}
	return email, nil
}
