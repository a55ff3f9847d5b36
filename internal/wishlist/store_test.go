package wishlist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *notify.Recorder) {
	rec := notify.NewRecorder()
	return NewStore(rec), rec
}

func TestStoreOudNoirScenario(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()

	oud := item("1", "Oud Noir", 210)

	require.NoError(t, s.Add(oud))
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Contains("1"))

	require.NoError(t, s.Add(oud))
	assert.Equal(t, 1, s.Count())

	s.Remove("1")
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Contains("1"))

	assert.Equal(t, []string{
		"Oud Noir added to wishlist!",
		"Oud Noir is already in your wishlist",
		"Removed from wishlist",
	}, rec.Messages())
	levels := rec.Notifications()
	assert.Equal(t, notify.LevelSuccess, levels[0].Level)
	assert.Equal(t, notify.LevelInfo, levels[1].Level)
}

func TestStoreAddMissingID(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()

	err := s.Add(domain.LineItem{Name: "Nameless"})

	assert.ErrorIs(t, err, ErrMissingID)
	assert.Zero(t, s.Count())
	assert.Empty(t, rec.Messages(), "a rejected add must not notify")
}

// Remove notifies even when nothing was removed, while Add only reports
// "added" when the item is new.
func TestStoreRemoveAlwaysNotifies(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()

	before := s.View()
	s.Remove("nonexistent")

	assert.Zero(t, s.Count())
	assert.Same(t, before, s.View(), "no-op remove must keep the snapshot")
	assert.Equal(t, []string{"Removed from wishlist"}, rec.Messages())
}

func TestStoreClear(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()

	require.NoError(t, s.Add(item("1", "Oud Noir", 210)))
	require.NoError(t, s.Add(item("2", "Rose Water", 185)))
	s.Clear()

	assert.Zero(t, s.Count())
	for _, id := range []string{"1", "2", "anything"} {
		assert.False(t, s.Contains(id))
	}
	assert.Equal(t, "Wishlist cleared", rec.Messages()[2])

	s.Clear()
	assert.Len(t, rec.Messages(), 4, "clear notifies unconditionally")
}

func TestStoreDerivedValues(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore()

	require.NoError(t, s.Add(item("1", "Oud Noir", 210)))
	require.NoError(t, s.Add(item("2", "Rose Water", 185)))
	require.NoError(t, s.Add(item("3", "Sand & Cedar", 195)))

	assert.Equal(t, 3, s.Count())
	assert.True(t, decimal.NewFromInt(590).Equal(s.Total()))

	s.Remove("2")
	got := s.Items()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.True(t, decimal.NewFromInt(405).Equal(s.Total()))
}

func TestStoreViewIsMemoized(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore()

	empty := s.View()
	assert.Same(t, empty, s.View())

	require.NoError(t, s.Add(item("1", "Oud Noir", 210)))
	first := s.View()
	assert.NotSame(t, empty, first)
	assert.Same(t, first, s.View())
	assert.True(t, first.Contains("1"))

	require.NoError(t, s.Add(item("1", "Oud Noir", 210)))
	assert.Same(t, first, s.View(), "duplicate add must keep the snapshot")

	s.Remove("1")
	assert.NotSame(t, first, s.View())
	assert.True(t, first.Contains("1"), "old snapshots are never modified")
}

func TestStoreItemsReturnsCopy(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore()
	require.NoError(t, s.Add(item("1", "Oud Noir", 210)))

	items := s.Items()
	items[0].Name = "Tampered"

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Oud Noir", got.Name)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreToggle(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()
	oud := item("1", "Oud Noir", 210)

	saved, err := s.Toggle(oud)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, s.Contains("1"))

	saved, err = s.Toggle(oud)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, s.Contains("1"))

	_, err = s.Toggle(domain.LineItem{})
	assert.ErrorIs(t, err, ErrMissingID)

	assert.Equal(t, []string{"Oud Noir added to wishlist!", "Removed from wishlist"}, rec.Messages())
}

func TestStoreDispatchIsSilent(t *testing.T) {
	t.Parallel()
	s, rec := newTestStore()

	s.Dispatch(Add(item("1", "Oud Noir", 210)))
	s.Dispatch(Add(item("2", "Rose Water", 185)))
	s.Dispatch(Remove("1"))

	assert.Equal(t, 1, s.Count())
	assert.Empty(t, rec.Messages())
}

func TestStoreNilNotifier(t *testing.T) {
	t.Parallel()
	s := NewStore(nil)
	assert.NotPanics(t, func() {
		require.NoError(t, s.Add(item("1", "Oud Noir", 210)))
		s.Remove("1")
		s.Clear()
	})
}

func TestStoreConcurrentAddsKeepIDsUnique(t *testing.T) {
	t.Parallel()
	s := NewStore(nil)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = s.Add(item(fmt.Sprint(i), "x", 1))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Count())
}
