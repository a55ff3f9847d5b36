package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scent-api/internal/authclient"
	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/phrazzld/scent-api/internal/checkout"
	"github.com/phrazzld/scent-api/internal/config"
	"github.com/phrazzld/scent-api/internal/service/account"
	"github.com/phrazzld/scent-api/internal/service/auth"
	"github.com/phrazzld/scent-api/internal/session"
	"github.com/phrazzld/scent-api/internal/store/kv"
)

// application holds the wired dependencies of the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	backend   *backend
	catalog   *catalog.Catalog
	tokens    auth.JWTService
	snapshots *kv.WishlistStore
	accounts  *account.Service
	sessions  *session.Manager
	checkout  *checkout.Service
}

// newApplication opens storage and builds every service from cfg.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	products, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	var remote account.RemoteAuthenticator
	if cfg.Auth.RemoteLoginURL != "" {
		client, err := authclient.New(cfg.Auth.RemoteLoginURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create remote login client: %w", err)
		}
		remote = client
	}

	b, err := openBackend(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	snapshots := kv.NewWishlistStore(b.kv)
	orders := kv.NewOrderStore(b.kv)
	sessions := session.NewManager(
		snapshots,
		time.Duration(cfg.Session.IdleTimeoutMinutes)*time.Minute,
		log,
	)
	hasher := auth.NewBcrypt(cfg.Auth.BcryptCost)

	accounts, err := account.NewService(account.Dependencies{
		Users:             kv.NewUserStore(b.kv),
		Sessions:          kv.NewSessionStores(b.kv),
		Orders:            orders,
		Wishlists:         snapshots,
		Settings:          kv.NewSettingsStore(b.kv),
		Tokens:            tokens,
		Hasher:            hasher,
		Verifier:          hasher,
		Remote:            remote,
		Live:              sessions,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		Logger:            log,
	})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    log,
		backend:   b,
		catalog:   products,
		tokens:    tokens,
		snapshots: snapshots,
		accounts:  accounts,
		sessions:  sessions,
		checkout:  checkout.NewService(orders, log),
	}, nil
}

// cleanup releases the backend.
func (app *application) cleanup() {
	if err := app.backend.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
