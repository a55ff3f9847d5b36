package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, e.g. "price": 210.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItem is one entry in a wishlist. The ID is opaque and unique within
// the collection that holds it.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	// InStock is optional; nil means in stock.
	InStock *bool `json:"inStock,omitempty"`
}

// Available reports whether the item is in stock. An absent flag counts as true.
func (i LineItem) Available() bool {
	return i.InStock == nil || *i.InStock
}

// Validate checks the item's required fields.
func (i LineItem) Validate() error {
	if i.ID == "" {
		return ErrInvalidID
	}
	if i.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// CartItem is a LineItem with a positive quantity.
type CartItem struct {
	LineItem
	Quantity int `json:"quantity"`
}

// NewCartItem returns a cart entry for item with quantity 1.
func NewCartItem(item LineItem) CartItem {
	return CartItem{LineItem: item, Quantity: 1}
}

// Subtotal returns price × quantity.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Validate checks the embedded line item and the quantity.
func (c CartItem) Validate() error {
	if err := c.LineItem.Validate(); err != nil {
		return err
	}
	if c.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// BoolPtr is a small helper for optional flags such as InStock.
func BoolPtr(b bool) *bool {
	return &b
}
