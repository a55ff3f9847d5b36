package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scent-api/internal/api"
	apiMiddleware "github.com/phrazzld/scent-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)

	resolver := api.NewSessionResolver(app.accounts, app.sessions)
	api.Handlers{
		Accounts: api.NewAccountHandler(app.accounts, resolver, app.logger),
		Products: api.NewProductHandler(app.catalog),
		Cart:     api.NewCartHandler(resolver, app.catalog),
		Wishlist: api.NewWishlistHandler(resolver, app.catalog, app.snapshots, app.logger),
		Orders:   api.NewOrderHandler(resolver, app.checkout),
		Auth:     apiMiddleware.NewAuthMiddleware(app.tokens),
	}.Mount(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
