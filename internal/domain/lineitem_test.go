package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemAvailable(t *testing.T) {
	t.Parallel()

	assert.True(t, LineItem{ID: "1"}.Available(), "absent flag means in stock")
	assert.True(t, LineItem{ID: "1", InStock: BoolPtr(true)}.Available())
	assert.False(t, LineItem{ID: "1", InStock: BoolPtr(false)}.Available())
}

func TestLineItemValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    LineItem
		wantErr error
	}{
		{"valid", LineItem{ID: "1", Price: decimal.NewFromInt(210)}, nil},
		{"free", LineItem{ID: "1"}, nil},
		{"missing id", LineItem{Price: decimal.NewFromInt(1)}, ErrInvalidID},
		{"negative price", LineItem{ID: "1", Price: decimal.NewFromInt(-1)}, ErrNegativePrice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCartItem(t *testing.T) {
	t.Parallel()

	item := NewCartItem(LineItem{ID: "2", Name: "Rose Water", Price: decimal.NewFromInt(185)})
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, decimal.NewFromInt(185).Equal(item.Subtotal()))

	item.Quantity = 3
	assert.True(t, decimal.NewFromInt(555).Equal(item.Subtotal()))
	assert.NoError(t, item.Validate())

	item.Quantity = 0
	assert.ErrorIs(t, item.Validate(), ErrInvalidQuantity)
}

func TestCartItemJSON(t *testing.T) {
	t.Parallel()

	item := CartItem{
		LineItem: LineItem{ID: "2", Name: "Rose Water", Brand: "Maison", Price: decimal.NewFromInt(185)},
		Quantity: 2,
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2", raw["id"])
	assert.Equal(t, float64(185), raw["price"], "price should be a JSON number")
	assert.Equal(t, float64(2), raw["quantity"])
	assert.NotContains(t, raw, "inStock")
}
