package cart

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name string, price int64) domain.LineItem {
	return domain.LineItem{ID: id, Name: name, Price: decimal.NewFromInt(price)}
}

func line(id, name string, price int64, qty int) domain.CartItem {
	return domain.CartItem{LineItem: product(id, name, price), Quantity: qty}
}

func TestReduce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		state  []domain.CartItem
		action Action
		want   []domain.CartItem
	}{
		{
			name:   "add new item starts at one",
			state:  nil,
			action: Add(product("2", "Rose Water", 185)),
			want:   []domain.CartItem{line("2", "Rose Water", 185, 1)},
		},
		{
			name:   "add existing increments",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 1), line("2", "Rose Water", 185, 1)},
			action: Add(product("2", "Rose Water", 185)),
			want:   []domain.CartItem{line("1", "Oud Noir", 210, 1), line("2", "Rose Water", 185, 2)},
		},
		{
			name:   "add without id is ignored",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 1)},
			action: Add(domain.LineItem{Name: "Nameless"}),
			want:   []domain.CartItem{line("1", "Oud Noir", 210, 1)},
		},
		{
			name:   "remove",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 1), line("2", "Rose Water", 185, 3)},
			action: Remove("1"),
			want:   []domain.CartItem{line("2", "Rose Water", 185, 3)},
		},
		{
			name:   "remove absent",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 1)},
			action: Remove("9"),
			want:   []domain.CartItem{line("1", "Oud Noir", 210, 1)},
		},
		{
			name:   "set quantity",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 1)},
			action: SetQuantity("1", 5),
			want:   []domain.CartItem{line("1", "Oud Noir", 210, 5)},
		},
		{
			name:   "set quantity zero removes",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 4), line("2", "Rose Water", 185, 1)},
			action: SetQuantity("1", 0),
			want:   []domain.CartItem{line("2", "Rose Water", 185, 1)},
		},
		{
			name:   "set quantity negative removes",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 4)},
			action: SetQuantity("1", -3),
			want:   nil,
		},
		{
			name:   "set quantity on absent id",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 4)},
			action: SetQuantity("7", 2),
			want:   []domain.CartItem{line("1", "Oud Noir", 210, 4)},
		},
		{
			name:   "clear",
			state:  []domain.CartItem{line("1", "Oud Noir", 210, 4)},
			action: Clear(),
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reduce(State{Items: tc.state}, tc.action)
			if diff := cmp.Diff(tc.want, got.Items, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduceQuantityMonotonicity(t *testing.T) {
	t.Parallel()

	var state State
	for i := 0; i < 5; i++ {
		state = Reduce(state, Add(product(fmt.Sprint(i), fmt.Sprint("p", i), 100)))
	}

	for target := 0; target < 5; target++ {
		before := state
		state = Reduce(state, Add(product(fmt.Sprint(target), "ignored", 1)))

		require.Len(t, state.Items, 5)
		for i := range state.Items {
			want := before.Items[i].Quantity
			if i == target {
				want++
			}
			assert.Equal(t, want, state.Items[i].Quantity, "item %d after adding %d", i, target)
			assert.Equal(t, before.Items[i].Name, state.Items[i].Name)
		}
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []domain.CartItem{line("1", "Oud Noir", 210, 1), line("2", "Rose Water", 185, 2)}
	state := State{Items: items}

	Reduce(state, Add(product("1", "Oud Noir", 210)))
	Reduce(state, SetQuantity("2", 9))
	Reduce(state, Remove("1"))

	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Len(t, items, 2)
}

func TestReduceSetSameQuantityIsNoOp(t *testing.T) {
	t.Parallel()

	state := State{Items: []domain.CartItem{line("1", "Oud Noir", 210, 2)}}
	next := Reduce(state, SetQuantity("1", 2))
	assert.True(t, sameItems(state.Items, next.Items))
}

func FuzzReduceQuantityNeverNonPositive(f *testing.F) {
	f.Add("1", 3, "1", -1)
	f.Add("a", 0, "b", 7)
	f.Add("x", 2, "x", 0)

	f.Fuzz(func(t *testing.T, id string, adds int, target string, qty int) {
		var state State
		n := adds % 10
		if n < 0 {
			n = -n
		}
		for i := 0; i <= n; i++ {
			state = Reduce(state, Add(domain.LineItem{ID: id}))
		}
		state = Reduce(state, SetQuantity(target, qty))
		state = Reduce(state, Remove("nonexistent-"+target))

		seen := map[string]bool{}
		for _, it := range state.Items {
			if it.Quantity <= 0 {
				t.Fatalf("item %q has quantity %d", it.ID, it.Quantity)
			}
			if seen[it.ID] {
				t.Fatalf("duplicate id %q", it.ID)
			}
			seen[it.ID] = true
		}
	})
}
