package account

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/authclient"
	"github.com/phrazzld/scent-api/internal/config"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/mocks"
	"github.com/phrazzld/scent-api/internal/platform/logger"
	"github.com/phrazzld/scent-api/internal/platform/memory"
	"github.com/phrazzld/scent-api/internal/service/auth"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/phrazzld/scent-api/internal/store/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testClient = "client-1"

type fakeLive struct {
	dropped []uuid.UUID
}

func (f *fakeLive) Drop(userID uuid.UUID) {
	f.dropped = append(f.dropped, userID)
}

type fixture struct {
	svc      *Service
	kv       *memory.KVStore
	sessions *kv.SessionStores
	orders   *kv.OrderStore
	live     *fakeLive
}

func newFixture(t *testing.T, remote RemoteAuthenticator) *fixture {
	t.Helper()

	backend := memory.NewKVStore()
	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	f := &fixture{
		kv:       backend,
		sessions: kv.NewSessionStores(backend),
		orders:   kv.NewOrderStore(backend),
		live:     &fakeLive{},
	}
	hasher := auth.NewBcrypt(bcrypt.MinCost)
	f.svc, err = NewService(Dependencies{
		Users:     kv.NewUserStore(backend),
		Sessions:  f.sessions,
		Orders:    f.orders,
		Wishlists: kv.NewWishlistStore(backend),
		Settings:  kv.NewSettingsStore(backend),
		Tokens:    tokens,
		Hasher:    hasher,
		Verifier:  hasher,
		Remote:    remote,
		Live:      f.live,
	})
	require.NoError(t, err)
	return f
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:           "Jane.Doe@Example.com",
		Username:        "Jane Doe",
		Phone:           "+1 (555) 010-2000",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		AgreeToTerms:    true,
	}
}

func register(t *testing.T, f *fixture) *AuthResult {
	t.Helper()
	res, err := f.svc.Register(context.Background(), testClient, validRegistration())
	require.NoError(t, err)
	return res
}

func TestNewService_MissingDependency(t *testing.T) {
	_, err := NewService(Dependencies{})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	res := register(t, f)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "jane.doe@example.com", res.User.Email)
	assert.Equal(t, "Jane", res.User.FirstName)
	assert.Equal(t, "Doe", res.User.LastName)
	assert.NotEqual(t, "correct-horse", res.User.HashedPassword)
	assert.Equal(t, "Registration successful! Welcome to PERFUME.", res.Greeting)

	session := f.sessions.ForClient(testClient)
	loggedIn, err := session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	current, err := session.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, current.ID)
	assert.Empty(t, current.HashedPassword, "session record never carries the hash")

	token, err := session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Token, token)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr error
	}{
		{"missing email", func(in *RegisterInput) { in.Email = " " }, ErrMissingFields},
		{"missing username", func(in *RegisterInput) { in.Username = "" }, ErrMissingFields},
		{"missing confirm", func(in *RegisterInput) { in.ConfirmPassword = "" }, ErrMissingFields},
		{"mismatch", func(in *RegisterInput) { in.ConfirmPassword = "correct-horse!" }, ErrPasswordsDoNotMatch},
		{"terms", func(in *RegisterInput) { in.AgreeToTerms = false }, ErrTermsNotAccepted},
		{"short password", func(in *RegisterInput) {
			in.Password, in.ConfirmPassword = "short", "short"
		}, ErrPasswordTooShort},
		{"bad email", func(in *RegisterInput) { in.Email = "jane@example" }, domain.ErrInvalidEmail},
		{"bad phone", func(in *RegisterInput) { in.Phone = "call me" }, domain.ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			in := validRegistration()
			tt.mutate(&in)

			_, err := f.svc.Register(context.Background(), testClient, in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.kv.Len(), "rejected registration writes nothing")
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f)

	sameEmail := validRegistration()
	sameEmail.Username = "someone else"
	sameEmail.Email = "JANE.DOE@example.com"
	_, err := f.svc.Register(context.Background(), "client-2", sameEmail)
	assert.ErrorIs(t, err, ErrUserExists)

	sameName := validRegistration()
	sameName.Email = "other@example.com"
	sameName.Username = "jane doe"
	_, err = f.svc.Register(context.Background(), "client-2", sameName)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_Local(t *testing.T) {
	f := newFixture(t, nil)
	registered := register(t, f)
	ctx := context.Background()

	t.Run("remember me", func(t *testing.T) {
		res, err := f.svc.Login(ctx, "client-2", LoginInput{
			Email:      "jane.doe@example.com",
			Password:   "correct-horse",
			RememberMe: true,
		})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, res.User.ID)
		assert.Equal(t, "Welcome back, Jane Doe!", res.Greeting)

		email, err := f.svc.RememberedEmail(ctx, "client-2")
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", email)
	})

	t.Run("without remember me clears it", func(t *testing.T) {
		_, err := f.svc.Login(ctx, "client-2", LoginInput{
			Email:    "JANE.DOE@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		email, err := f.svc.RememberedEmail(ctx, "client-2")
		require.NoError(t, err)
		assert.Empty(t, email)
	})

	t.Run("failures", func(t *testing.T) {
		tests := []struct {
			in      LoginInput
			wantErr error
		}{
			{LoginInput{Email: "", Password: "x"}, ErrMissingFields},
			{LoginInput{Email: "jane.doe@example.com"}, ErrMissingFields},
			{LoginInput{Email: "nobody@example.com", Password: "correct-horse"}, ErrInvalidCredentials},
			{LoginInput{Email: "jane.doe@example.com", Password: "wrong-horse"}, ErrInvalidCredentials},
		}
		for _, tt := range tests {
			_, err := f.svc.Login(ctx, "client-3", tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		}

		loggedIn, err := f.sessions.ForClient("client-3").IsLoggedIn(ctx)
		require.NoError(t, err)
		assert.False(t, loggedIn)
	})
}

func TestLogin_Remote(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection surfaces the remote error", func(t *testing.T) {
		remote := &mocks.MockRemoteAuthenticator{Err: &authclient.RemoteError{Status: 401, Message: "Account locked"}}
		f := newFixture(t, remote)

		_, err := f.svc.Login(ctx, testClient, LoginInput{Email: "a@example.com", Password: "pw"})
		var remoteErr *authclient.RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, "Account locked", remoteErr.Message)
		assert.Zero(t, f.kv.Len(), "no partial state on failure")
	})

	t.Run("provisions unknown users", func(t *testing.T) {
		remote := &mocks.MockRemoteAuthenticator{Result: &authclient.LoginResult{
			Token: "remote-token",
			User:  json.RawMessage(`{"username":"Sam Smith","phone":"555-0100"}`),
			Name:  "Sam",
		}}
		f := newFixture(t, remote)

		res, err := f.svc.Login(ctx, testClient, LoginInput{Email: "sam@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "Welcome back, Sam!", res.Greeting)
		assert.Equal(t, "Sam", res.User.FirstName)
		assert.Equal(t, "Smith", res.User.LastName)

		again, err := f.svc.Login(ctx, testClient, LoginInput{Email: "sam@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, again.User.ID)
		assert.Equal(t, 2, remote.Calls)
	})

	t.Run("malformed user payload is logged", func(t *testing.T) {
		remote := &mocks.MockRemoteAuthenticator{Result: &authclient.LoginResult{
			Token: "remote-token",
			User:  json.RawMessage(`["not","an","object"]`),
			Name:  "Lee",
		}}
		f := newFixture(t, remote)
		logs, log := logger.NewTestLogger()
		f.svc.logger = log

		res, err := f.svc.Login(ctx, testClient, LoginInput{Email: "lee@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "Lee", res.User.Username)

		entries, err := logs.GetLogEntries()
		require.NoError(t, err)
		var found bool
		for _, e := range entries {
			if e["msg"] == "ignoring malformed remote user payload" {
				found = true
				assert.Equal(t, "DEBUG", e["level"])
				assert.NotEmpty(t, e["error"])
			}
		}
		assert.True(t, found, "malformed payload should be logged")
	})

	t.Run("missing name falls back to User", func(t *testing.T) {
		remote := &mocks.MockRemoteAuthenticator{Result: &authclient.LoginResult{Token: "remote-token"}}
		f := newFixture(t, remote)

		res, err := f.svc.Login(ctx, testClient, LoginInput{Email: "kim@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "Welcome back, User!", res.Greeting)
		assert.Equal(t, "kim", res.User.Username)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)
	_, err := f.svc.Login(ctx, testClient, LoginInput{
		Email: "jane.doe@example.com", Password: "correct-horse", RememberMe: true,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, testClient, res.User.ID))

	session := f.sessions.ForClient(testClient)
	_, err = session.CurrentUser(ctx)
	assert.ErrorIs(t, err, store.ErrNoCurrentUser)
	loggedIn, err := session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
	token, err := session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	email, err := session.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	assert.Equal(t, []uuid.UUID{res.User.ID}, f.live.dropped)
}

func TestRegister_DependencyFailures(t *testing.T) {
	backend := memory.NewKVStore()
	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	newService := func(users *mocks.MockUserStore, hasher *mocks.MockPasswordHasher) *Service {
		svc, err := NewService(Dependencies{
			Users:     users,
			Sessions:  kv.NewSessionStores(backend),
			Orders:    kv.NewOrderStore(backend),
			Wishlists: kv.NewWishlistStore(backend),
			Settings:  kv.NewSettingsStore(backend),
			Tokens:    tokens,
			Hasher:    hasher,
			Verifier:  &mocks.MockPasswordVerifier{ShouldSucceed: true},
		})
		require.NoError(t, err)
		return svc
	}

	t.Run("hash failure", func(t *testing.T) {
		svc := newService(mocks.NewMockUserStore(), &mocks.MockPasswordHasher{
			HashFn: func(string) (string, error) { return "", errors.New("entropy exhausted") },
		})
		_, err := svc.Register(context.Background(), testClient, validRegistration())
		var svcErr *AccountServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "register", svcErr.Operation)
	})

	t.Run("store failure", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		users.CreateFn = func(context.Context, *domain.User) error { return store.ErrTransactionFailed }
		svc := newService(users, &mocks.MockPasswordHasher{})
		_, err := svc.Register(context.Background(), testClient, validRegistration())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.NotErrorIs(t, err, ErrUserExists)
	})

	t.Run("mock store duplicate", func(t *testing.T) {
		svc := newService(mocks.NewMockUserStore(), &mocks.MockPasswordHasher{})
		_, err := svc.Register(context.Background(), testClient, validRegistration())
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), "client-2", validRegistration())
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("login uses verifier", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		verifier := &mocks.MockPasswordVerifier{}
		svc, err := NewService(Dependencies{
			Users:     users,
			Sessions:  kv.NewSessionStores(backend),
			Orders:    kv.NewOrderStore(backend),
			Wishlists: kv.NewWishlistStore(backend),
			Settings:  kv.NewSettingsStore(backend),
			Tokens:    tokens,
			Hasher:    &mocks.MockPasswordHasher{},
			Verifier:  verifier,
		})
		require.NoError(t, err)
		_, err = svc.Register(context.Background(), testClient, validRegistration())
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), testClient, LoginInput{
			Email: "jane.doe@example.com", Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, 1, verifier.CompareCallCount)
	})
}
