package wishlist

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
var ErrMissingID = errors.New("wishlist: item id is required")

// View is a read-only snapshot of the wishlist with its derived values.
// Callers must not modify Items.
type View struct {
	Items []domain.LineItem
	Count int
	Total decimal.Decimal
}

// Contains reports whether the snapshot holds id.
func (v *View) Contains(id string) bool {
	return indexOf(v.Items, id) >= 0
}

// Store owns one wishlist. All methods are safe for concurrent use and
// each action is applied atomically.
type Store struct {
	mu       sync.Mutex
	state    State
	view     *View
	notifier notify.Notifier
}

// NewStore creates an empty wishlist that reports to notifier.
// A nil notifier discards notifications.
func NewStore(notifier notify.Notifier) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		state:    State{Items: []domain.LineItem{}},
		notifier: notifier,
	}
}

// Add saves item. An item already present is left untouched and the user
// is told it is already saved.
func (s *Store) Add(item domain.LineItem) error {
	if item.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	exists := indexOf(s.state.Items, item.ID) >= 0
	if !exists {
		s.apply(Add(item))
	}
	s.mu.Unlock()

	if exists {
		notify.Info(s.notifier, fmt.Sprintf("%s is already in your wishlist", item.Name))
		return nil
	}
	notify.Success(s.notifier, fmt.Sprintf("%s added to wishlist!", item.Name))
	return nil
}

// Remove drops id. The notification is sent even when id was not saved.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	s.apply(Remove(id))
	s.mu.Unlock()

	notify.Success(s.notifier, "Removed from wishlist")
}

// Clear empties the wishlist.
func (s *Store) Clear() {
	s.mu.Lock()
	s.apply(Clear())
	s.mu.Unlock()

	notify.Success(s.notifier, "Wishlist cleared")
}

// Toggle removes item if saved and adds it otherwise. It reports whether
// the item is saved afterwards.
func (s *Store) Toggle(item domain.LineItem) (bool, error) {
	if item.ID == "" {
		return false, ErrMissingID
	}

	s.mu.Lock()
	exists := indexOf(s.state.Items, item.ID) >= 0
	if exists {
		s.apply(Remove(item.ID))
	} else {
		s.apply(Add(item))
	}
	s.mu.Unlock()

	if exists {
		notify.Success(s.notifier, "Removed from wishlist")
		return false, nil
	}
	notify.Success(s.notifier, fmt.Sprintf("%s added to wishlist!", item.Name))
	return true, nil
}

// Contains reports whether id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.state.Items, id) >= 0
}

// Get returns the saved item with the given id.
func (s *Store) Get(id string) (domain.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Items, id); i >= 0 {
		return s.state.Items[i], true
	}
	return domain.LineItem{}, false
}

// Items returns a copy of the saved items in display order.
func (s *Store) Items() []domain.LineItem {
	return slices.Clone(s.View().Items)
}

// Count returns the number of saved items.
func (s *Store) Count() int {
	return s.View().Count
}

// Total returns the sum of saved item prices.
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

// Dispatch applies action without sending notifications. It is used to
// rehydrate a wishlist from a saved snapshot.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.apply(action)
	s.mu.Unlock()
}

// apply must be called with s.mu held.
func (s *Store) apply(action Action) {
	next := Reduce(s.state, action)
	if !sameItems(s.state.Items, next.Items) {
		s.view = nil
	}
	s.state = next
}

func buildView(items []domain.LineItem) *View {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return &View{Items: items, Count: len(items), Total: total}
}

// sameItems reports whether a and b are the same slice value.
func sameItems(a, b []domain.LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
