package wishlist

import (
	"slices"

	"github.com/phrazzld/scent-api/internal/domain"
)

// ActionType names a wishlist transition.
type ActionType string

const (
	ActionAdd    ActionType = "ADD_TO_WISHLIST"
	ActionRemove ActionType = "REMOVE_FROM_WISHLIST"
	ActionClear  ActionType = "CLEAR_WISHLIST"
)

// Action is a request to change wishlist state.
type Action struct {
	Type ActionType
	Item domain.LineItem
	ID   string
}

// Add returns an action that appends item unless its ID is already present.
func Add(item domain.LineItem) Action { return Action{Type: ActionAdd, Item: item} }

// Remove returns an action that drops the item with the given ID.
func Remove(id string) Action { return Action{Type: ActionRemove, ID: id} }

// Clear returns an action that empties the wishlist.
func Clear() Action { return Action{Type: ActionClear} }

// State is the ordered wishlist. Insertion order is display order and IDs
// are unique.
type State struct {
	Items []domain.LineItem
}

// Reduce applies action to state and returns the next state. It never
// modifies state.Items; any change yields a freshly allocated slice and a
// no-op returns state as is. An add without an ID is a no-op.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionAdd:
		if action.Item.ID == "" || indexOf(state.Items, action.Item.ID) >= 0 {
			return state
		}
		items := make([]domain.LineItem, len(state.Items), len(state.Items)+1)
		copy(items, state.Items)
		return State{Items: append(items, action.Item)}

	case ActionRemove:
		i := indexOf(state.Items, action.ID)
		if i < 0 {
			return state
		}
		items := make([]domain.LineItem, 0, len(state.Items)-1)
		items = append(items, state.Items[:i]...)
		return State{Items: append(items, state.Items[i+1:]...)}

	case ActionClear:
		return State{Items: []domain.LineItem{}}

	default:
		return state
	}
}

func indexOf(items []domain.LineItem, id string) int {
	return slices.IndexFunc(items, func(it domain.LineItem) bool { return it.ID == id })
}
