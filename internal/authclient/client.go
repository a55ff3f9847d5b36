// Package authclient talks to a remote login service that speaks the
// storefront's login protocol: POST <base>/api/users/login with
// {"email","password"}, answered by {"token","user","data":{"name"}} on
// success and {"message"} on failure.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/scent-api/internal/platform/logger"
)

// LoginPath is appended to the base URL for login requests.
const LoginPath = "/api/users/login"

// DefaultMessage is reported when a failed response carries no message.
const DefaultMessage = "Login failed"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// ErrEmptyBaseURL is returned by New when no base URL is given.
var ErrEmptyBaseURL = errors.New("auth client base URL cannot be empty")

// LoginResult is a successful login response.
type LoginResult struct {
	Token string
	// User is the remote user record, passed through undecoded.
	User json.RawMessage
	// Name is data.name from the response, possibly empty.
	Name string
}

// RemoteError is a non-2xx login response. Message is the server's
// message verbatim, or DefaultMessage when it sent none.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Client calls the remote login endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
	Data    *struct {
		Name string `json:"name"`
	} `json:"data"`
}

// Login sends the credentials to the remote service. A rejected login
// returns *RemoteError; transport and decoding failures are wrapped. Login
// never retries.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx).With(slog.String("component", "auth_client"))

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LoginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("login request failed", "error", err)
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	var decoded loginResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.Message
		if decodeErr != nil || msg == "" {
			msg = DefaultMessage
		}
		log.Debug("remote login rejected", "status", resp.StatusCode)
		return nil, &RemoteError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", decodeErr)
	}

	result := &LoginResult{Token: decoded.Token, User: decoded.User}
	if decoded.Data != nil {
		result.Name = decoded.Data.Name
	}
	return result, nil
}
