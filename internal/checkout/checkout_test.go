package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/platform/memory"
	"github.com/phrazzld/scent-api/internal/session"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/phrazzld/scent-api/internal/store/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, backend *memory.KVStore) *session.Session {
	t.Helper()
	m := session.NewManager(kv.NewWishlistStore(backend), time.Minute, nil)
	s, err := m.Open(context.Background(), &domain.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)
	return s
}

func TestPlaceOrder(t *testing.T) {
	backend := memory.NewKVStore()
	orders := kv.NewOrderStore(backend)
	svc := NewService(orders, nil)
	fixed := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	sess := openSession(t, backend)
	rec := notify.NewRecorder()
	sess.Notifications.Subscribe(rec)

	item := domain.LineItem{ID: "2", Name: "Velvet Rose", Brand: "Atelier", Price: decimal.NewFromInt(185)}
	require.NoError(t, sess.Cart.Add(item))
	require.NoError(t, sess.Cart.Add(item))
	rec.Drain()

	order, err := svc.PlaceOrder(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, order.Status)
	assert.Equal(t, fixed, order.Date)
	assert.True(t, decimal.NewFromInt(370).Equal(order.Total))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Zero(t, sess.Cart.Count())
	assert.Equal(t, []string{"Cart cleared", OrderPlacedMessage}, rec.Messages())

	saved, err := svc.Orders(context.Background(), "JANE@example.com", "")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, order.ID, saved[0].ID)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	backend := memory.NewKVStore()
	svc := NewService(kv.NewOrderStore(backend), nil)

	_, err := svc.PlaceOrder(context.Background(), openSession(t, backend))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, backend.Len())
}

type failingOrders struct{}

func (failingOrders) ListByEmail(context.Context, string) ([]domain.Order, error) {
	return nil, errors.New("backend down")
}

func (failingOrders) Add(context.Context, string, *domain.Order) error {
	return errors.New("backend down")
}

func TestPlaceOrder_SaveFailureKeepsCart(t *testing.T) {
	svc := NewService(failingOrders{}, nil)
	sess := openSession(t, memory.NewKVStore())
	require.NoError(t, sess.Cart.Add(domain.LineItem{ID: "1", Name: "Oud Noir", Price: decimal.NewFromInt(220)}))

	rec := notify.NewRecorder()
	sess.Notifications.Subscribe(rec)

	_, err := svc.PlaceOrder(context.Background(), sess)
	assert.Error(t, err)
	assert.Equal(t, 1, sess.Cart.Count())
	assert.Equal(t, []string{OrderFailedMessage}, rec.Messages())
}

// gatedOrders holds the first Add until release is closed.
type gatedOrders struct {
	store.OrderStore
	started chan struct{}
	release chan struct{}
}

func newGatedOrders(backend *memory.KVStore) *gatedOrders {
	return &gatedOrders{
		OrderStore: kv.NewOrderStore(backend),
		started:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
}

func (g *gatedOrders) Add(ctx context.Context, email string, order *domain.Order) error {
	select {
	case g.started <- struct{}{}:
	default:
	}
	<-g.release
	return g.OrderStore.Add(ctx, email, order)
}

func TestPlaceOrder_ConcurrentCheckoutsOrderCartOnce(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewKVStore()
	orders := newGatedOrders(backend)
	svc := NewService(orders, nil)

	sess := openSession(t, backend)
	require.NoError(t, sess.Cart.Add(domain.LineItem{ID: "1", Name: "Oud Noir", Price: decimal.NewFromInt(220)}))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(ctx, sess)
		}()
		if i == 0 {
			<-orders.started
		}
	}
	time.Sleep(20 * time.Millisecond)
	close(orders.release)
	wg.Wait()

	placed := 0
	for _, err := range errs {
		if err == nil {
			placed++
			continue
		}
		assert.ErrorIs(t, err, ErrEmptyCart)
	}
	assert.Equal(t, 1, placed)

	saved, err := svc.Orders(ctx, "jane@example.com", "")
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Zero(t, sess.Cart.Count())
}

func TestPlaceOrder_KeepsItemsAddedDuringSave(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewKVStore()
	orders := newGatedOrders(backend)
	svc := NewService(orders, nil)

	oud := domain.LineItem{ID: "1", Name: "Oud Noir", Price: decimal.NewFromInt(220)}
	rose := domain.LineItem{ID: "3", Name: "Velvet Rose", Price: decimal.NewFromInt(185)}
	sess := openSession(t, backend)
	require.NoError(t, sess.Cart.Add(oud))

	type result struct {
		order *domain.Order
		err   error
	}
	done := make(chan result, 1)
	go func() {
		order, err := svc.PlaceOrder(ctx, sess)
		done <- result{order, err}
	}()

	<-orders.started
	require.NoError(t, sess.Cart.Add(oud))
	require.NoError(t, sess.Cart.Add(rose))
	close(orders.release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.order.Items, 1)
	assert.Equal(t, 1, res.order.Items[0].Quantity)

	left := sess.Cart.Items()
	require.Len(t, left, 2)
	assert.Equal(t, "1", left[0].ID)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, "3", left[1].ID)
}

func TestOrders_StatusFilter(t *testing.T) {
	ctx := context.Background()
	orders := kv.NewOrderStore(memory.NewKVStore())
	svc := NewService(orders, nil)

	item := domain.CartItem{LineItem: domain.LineItem{ID: "1", Name: "Oud Noir", Price: decimal.NewFromInt(220)}, Quantity: 1}
	for _, status := range []domain.OrderStatus{domain.OrderDelivered, domain.OrderShipped, domain.OrderDelivered} {
		o, err := domain.NewOrder([]domain.CartItem{item}, time.Now())
		require.NoError(t, err)
		o.Status = status
		require.NoError(t, orders.Add(ctx, "jane@example.com", o))
	}

	delivered, err := svc.Orders(ctx, "jane@example.com", domain.OrderDelivered)
	require.NoError(t, err)
	assert.Len(t, delivered, 2)

	_, err = svc.Orders(ctx, "jane@example.com", "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}
