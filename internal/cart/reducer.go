package cart

import (
	"slices"

	"github.com/phrazzld/scent-api/internal/domain"
)

// ActionType names a cart transition.
type ActionType string

const (
	ActionAdd         ActionType = "ADD_TO_CART"
	ActionRemove      ActionType = "REMOVE_FROM_CART"
	ActionClear       ActionType = "CLEAR_CART"
	ActionSetQuantity ActionType = "UPDATE_QUANTITY"
)

// Action is a request to change cart state.
type Action struct {
	Type     ActionType
	Item     domain.LineItem
	ID       string
	Quantity int
}

// Add returns an action that puts one unit of item in the cart.
func Add(item domain.LineItem) Action { return Action{Type: ActionAdd, Item: item} }

// Remove returns an action that drops the line with the given ID.
func Remove(id string) Action { return Action{Type: ActionRemove, ID: id} }

// Clear returns an action that empties the cart.
func Clear() Action { return Action{Type: ActionClear} }

// SetQuantity returns an action that sets the quantity of id to n.
func SetQuantity(id string, n int) Action {
	return Action{Type: ActionSetQuantity, ID: id, Quantity: n}
}

// State is the ordered cart. IDs are unique and every quantity is positive.
type State struct {
	Items []domain.CartItem
}

// Reduce applies action to state and returns the next state without
// modifying state.Items. An add without an ID is ignored.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionAdd:
		if action.Item.ID == "" {
			return state
		}
		i := indexOf(state.Items, action.Item.ID)
		if i < 0 {
			items := make([]domain.CartItem, len(state.Items), len(state.Items)+1)
			copy(items, state.Items)
			return State{Items: append(items, domain.NewCartItem(action.Item))}
		}
		return withQuantity(state, i, state.Items[i].Quantity+1)

	case ActionRemove:
		return remove(state, action.ID)

	case ActionClear:
		return State{Items: []domain.CartItem{}}

	case ActionSetQuantity:
		if action.Quantity <= 0 {
			return remove(state, action.ID)
		}
		i := indexOf(state.Items, action.ID)
		if i < 0 || state.Items[i].Quantity == action.Quantity {
			return state
		}
		return withQuantity(state, i, action.Quantity)

	default:
		return state
	}
}

func remove(state State, id string) State {
	i := indexOf(state.Items, id)
	if i < 0 {
		return state
	}
	items := make([]domain.CartItem, 0, len(state.Items)-1)
	items = append(items, state.Items[:i]...)
	return State{Items: append(items, state.Items[i+1:]...)}
}

func withQuantity(state State, i, quantity int) State {
	items := slices.Clone(state.Items)
	items[i].Quantity = quantity
	return State{Items: items}
}

func indexOf(items []domain.CartItem, id string) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool { return it.ID == id })
}
