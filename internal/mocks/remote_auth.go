package mocks

import (
	"context"

	"github.com/phrazzld/scent-api/internal/authclient"
)

// MockRemoteAuthenticator stands in for *authclient.Client.
type MockRemoteAuthenticator struct {
	LoginFn func(ctx context.Context, email, password string) (*authclient.LoginResult, error)

	Result *authclient.LoginResult
	Err    error
	Calls  int
}

// Login returns LoginFn's result, or Result and Err.
func (m *MockRemoteAuthenticator) Login(ctx context.Context, email, password string) (*authclient.LoginResult, error) {
	m.Calls++
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.Result, m.Err
}
