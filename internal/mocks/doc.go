// Package mocks provides hand-written mocks shared by tests across packages.
//
// Each mock has a function field per method. A nil function falls back to a
// simple default so tests only configure the behaviour they care about:
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
package mocks
