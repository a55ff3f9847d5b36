package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestJWTService(t *testing.T, secret string, lifetime time.Duration, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(secret, lifetime, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrWeakSecret)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()
	svc := newTestJWTService(t, testSecret, lifetime, fixedTime)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "token ids are unique")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()

	issue := func(t *testing.T) string {
		token, err := newTestJWTService(t, testSecret, lifetime, fixedTime).
			GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		secret  string
		at      time.Time
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name:   "valid token",
			secret: testSecret,
			at:     fixedTime.Add(time.Minute),
			token:  issue,
		},
		{
			name:    "expired token",
			secret:  testSecret,
			at:      fixedTime.Add(lifetime + time.Hour),
			token:   issue,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "within clock skew",
			secret:  testSecret,
			at:      fixedTime.Add(lifetime + time.Minute),
			token:   issue,
			wantErr: nil,
		},
		{
			name:    "issued in the future",
			secret:  testSecret,
			at:      fixedTime.Add(-time.Hour),
			token:   issue,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "invalid signature",
			secret:  "wrong-secret-that-is-long-enough-for-testing",
			at:      fixedTime,
			token:   issue,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			secret:  testSecret,
			at:      fixedTime,
			token:   func(*testing.T) string { return "this.is.not.a.valid.jwt.token" },
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			secret:  testSecret,
			at:      fixedTime,
			token:   func(*testing.T) string { return "" },
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestJWTService(t, tt.secret, lifetime, tt.at)
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
