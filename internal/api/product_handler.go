package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/catalog"
)

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// List handles GET /api/products?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Filter(r.URL.Query().Get("category"))
	shared.RespondWithJSON(w, r, http.StatusOK, ProductsResponse{
		Products: products,
		Count:    len(products),
	})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CategoriesResponse{Categories: h.catalog.Categories()})
}
