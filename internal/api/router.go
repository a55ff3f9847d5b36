package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scent-api/internal/api/middleware"
)

// Handlers groups the route handlers mounted under /api.
type Handlers struct {
	Accounts *AccountHandler
	Products *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Orders   *OrderHandler
	Auth     *middleware.AuthMiddleware
}

// Mount registers the /api routes on r. Client identification runs on
// every route; bearer authentication on the per-user ones.
func (h Handlers) Mount(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ClientID)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/categories", h.Products.Categories)
			r.Get("/{id}", h.Products.Get)
		})

		r.Post("/users/register", h.Accounts.Register)
		r.Post("/users/login", h.Accounts.Login)
		r.Get("/users/remembered-email", h.Accounts.RememberedEmail)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Authenticate)

			r.Post("/users/logout", h.Accounts.Logout)
			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", h.Accounts.Me)
				r.Put("/", h.Accounts.UpdateProfile)
				r.Put("/password", h.Accounts.ChangePassword)
				r.Get("/stats", h.Accounts.Stats)
				r.Get("/settings", h.Accounts.Settings)
				r.Put("/settings", h.Accounts.SaveSettings)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.Get)
				r.Delete("/", h.Cart.Clear)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{id}", h.Cart.UpdateItem)
				r.Delete("/items/{id}", h.Cart.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", h.Wishlist.Get)
				r.Delete("/", h.Wishlist.Clear)
				r.Post("/items", h.Wishlist.AddItem)
				r.Get("/items/{id}", h.Wishlist.Contains)
				r.Delete("/items/{id}", h.Wishlist.RemoveItem)
				r.Post("/items/{id}/toggle", h.Wishlist.Toggle)
				r.Post("/items/{id}/move-to-cart", h.Wishlist.MoveToCart)
			})

			r.Post("/checkout", h.Orders.Checkout)
			r.Get("/orders", h.Orders.List)
		})
	})
}
