package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/api/shared"
)

const (
	// ClientIDHeader lets non-browser callers name their client explicitly.
	ClientIDHeader = "X-Client-ID"
	// ClientIDCookie is set on first contact when no header is sent.
	ClientIDCookie = "client_id"

	maxClientIDLength = 128
)

// ClientID scopes per-client state (current session, remembered email) by
// resolving a client identifier from the header, then the cookie, and
// otherwise minting a new one.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
		if !validClientID(id) {
			id = ""
			if c, err := r.Cookie(ClientIDCookie); err == nil && validClientID(c.Value) {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientIDCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(shared.WithClientID(r.Context(), id)))
	})
}

// validClientID rejects values that could escape a storage key segment.
func validClientID(id string) bool {
	if id == "" || len(id) > maxClientIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
