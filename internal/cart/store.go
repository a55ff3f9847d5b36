package cart

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/shopspring/decimal"
)

// ErrMissingID is returned by Add when the item has no ID.
var ErrMissingID = errors.New("cart: item id is required")

// View is a read-only snapshot of the cart. Callers must not modify Items.
type View struct {
	Items []domain.CartItem
	// Count is the total number of units across all lines.
	Count int
	Total decimal.Decimal
}

// Contains reports whether the snapshot holds id.
func (v *View) Contains(id string) bool {
	return indexOf(v.Items, id) >= 0
}

// Store owns one cart. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	state    State
	view     *View
	notifier notify.Notifier
}

// NewStore creates an empty cart that reports to notifier.
// A nil notifier discards notifications.
func NewStore(notifier notify.Notifier) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		state:    State{Items: []domain.CartItem{}},
		notifier: notifier,
	}
}

// Add puts one unit of item in the cart.
func (s *Store) Add(item domain.LineItem) error {
	if item.ID == "" {
		return ErrMissingID
	}

	s.Dispatch(Add(item))
	notify.Success(s.notifier, fmt.Sprintf("%s added to cart!", item.Name))
	return nil
}

// Remove drops id. The notification is sent even when id was not in the cart.
func (s *Store) Remove(id string) {
	s.Dispatch(Remove(id))
	notify.Success(s.notifier, "Removed from cart")
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.Dispatch(Clear())
	notify.Success(s.notifier, "Cart cleared")
}

// SetQuantity sets the quantity of id. A quantity of zero or less removes it.
func (s *Store) SetQuantity(id string, n int) {
	s.Dispatch(SetQuantity(id, n))
	notify.Success(s.notifier, "Cart updated")
}

// Contains reports whether id is in the cart.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.state.Items, id) >= 0
}

// Quantity returns the quantity of id, or zero if absent.
func (s *Store) Quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Items, id); i >= 0 {
		return s.state.Items[i].Quantity
	}
	return 0
}

// Items returns a copy of the cart lines in display order.
func (s *Store) Items() []domain.CartItem {
	return slices.Clone(s.View().Items)
}

// Count returns the number of units in the cart.
func (s *Store) Count() int {
	return s.View().Count
}

// Total returns the sum of price × quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	return s.View().Total
}

// View returns the memoized snapshot. The same pointer is returned until
// an action replaces the item slice.
func (s *Store) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		s.view = buildView(s.state.Items)
	}
	return s.view
}

// Dispatch applies action without sending notifications.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(Reduce(s.state, action))
}

// Settle takes the lines of ordered out of the cart. Units added after
// ordered was taken stay in the cart. "Cart cleared" is sent when nothing
// is left, "Cart updated" otherwise.
func (s *Store) Settle(ordered []domain.CartItem) {
	s.mu.Lock()
	next := s.state
	for _, it := range ordered {
		if i := indexOf(next.Items, it.ID); i >= 0 {
			next = Reduce(next, SetQuantity(it.ID, next.Items[i].Quantity-it.Quantity))
		}
	}
	s.apply(next)
	empty := len(next.Items) == 0
	s.mu.Unlock()

	if empty {
		notify.Success(s.notifier, "Cart cleared")
		return
	}
	notify.Success(s.notifier, "Cart updated")
}

// apply replaces the state. The caller holds s.mu.
func (s *Store) apply(next State) {
	if !sameItems(s.state.Items, next.Items) {
		s.view = nil
	}
	s.state = next
}

func buildView(items []domain.CartItem) *View {
	v := &View{Items: items, Total: decimal.Zero}
	for _, it := range items {
		v.Count += it.Quantity
		v.Total = v.Total.Add(it.Subtotal())
	}
	return v
}

func sameItems(a, b []domain.CartItem) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
