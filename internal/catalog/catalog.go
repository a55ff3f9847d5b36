package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/shopspring/decimal"
)

// AllCategories selects every product in Filter.
const AllCategories = "All"

// DefaultBrand is used for products whose catalog entry names no brand.
const DefaultBrand = "Premium Brand"

var (
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct is returned when two catalog entries share an ID.
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// Product is a fragrance offered for sale.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Family   string          `json:"family"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Rating   int             `json:"rating"`
	InStock  bool            `json:"inStock"`
}

// LineItem converts the product into a wishlist entry.
func (p Product) LineItem() domain.LineItem {
	brand := p.Brand
	if brand == "" {
		brand = DefaultBrand
	}
	return domain.LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    brand,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		InStock:  domain.BoolPtr(p.InStock),
	}
}

// CartItem converts the product into a cart line with quantity 1.
func (p Product) CartItem() domain.CartItem {
	return domain.NewCartItem(p.LineItem())
}

// Catalog is an immutable, ordered set of products.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from products, keeping their order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if err := p.LineItem().Validate(); err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, p.Name, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// List returns every product in catalog order.
func (c *Catalog) List() []Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Filter returns the products whose family equals category. An empty
// category or AllCategories returns everything.
func (c *Catalog) Filter(category string) []Product {
	if category == "" || category == AllCategories {
		return c.List()
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Family == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns AllCategories followed by each family in order of
// first appearance.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	for _, p := range c.products {
		if !slices.Contains(out, p.Family) {
			out = append(out, p.Family)
		}
	}
	return out
}
