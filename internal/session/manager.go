// Package session owns the in-memory cart and wishlist of each logged-in
// user. A Session lives until its user logs out or stays idle past the
// manager's timeout.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/cart"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/phrazzld/scent-api/internal/wishlist"
)

// DefaultIdleTimeout applies when NewManager is given a non-positive timeout.
const DefaultIdleTimeout = 30 * time.Minute

// Session is one user's shopping state.
type Session struct {
	UserID   uuid.UUID
	Cart     *cart.Store
	Wishlist *wishlist.Store
	// Notifications fans out what the stores emit. Request handlers
	// subscribe a recorder for the duration of a request.
	Notifications *notify.Emitter

	requests sync.Mutex
	checkout sync.Mutex

	mu       sync.Mutex
	email    string
	lastSeen time.Time
}

// Exclusive runs fn while no other Exclusive call on the session runs.
// Everything the stores emit during fn therefore belongs to fn.
func (s *Session) Exclusive(fn func() error) error {
	s.requests.Lock()
	defer s.requests.Unlock()
	return fn()
}

// LockCheckout serializes checkouts of the session's cart. The caller must
// call the returned function when its checkout is finished.
func (s *Session) LockCheckout() (unlock func()) {
	s.checkout.Lock()
	return s.checkout.Unlock
}

// Email is the address the session's saved data is keyed by.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

func (s *Session) touch(email string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if email != "" {
		s.email = email
	}
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager maps user IDs to sessions.
type Manager struct {
	snapshots   store.WishlistSnapshotStore
	idleTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager that hydrates wishlists from snapshots.
func NewManager(
	snapshots store.WishlistSnapshotStore,
	idleTimeout time.Duration,
	logger *slog.Logger,
	opts ...Option,
) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		snapshots:   snapshots,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "session_manager")),
		sessions:    make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the live session of userID.
func (m *Manager) Get(userID uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if ok {
		s.touch("", m.now())
	}
	return s, ok
}

// Open returns the user's session, creating it on first use. A new
// session's wishlist is rehydrated from the user's saved snapshot without
// emitting notifications; its cart starts empty.
func (m *Manager) Open(ctx context.Context, user *domain.User) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	if s, ok := m.sessions[user.ID]; ok {
		m.mu.Unlock()
		s.touch(user.Email, now)
		return s, nil
	}
	m.mu.Unlock()

	saved, err := m.snapshots.Load(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	emitter := notify.NewEmitter(m.logger)
	emitter.RegisterHandler(notify.LogHandler{
		Logger: m.logger.With(slog.String("user_id", user.ID.String())),
	})
	fresh := &Session{
		UserID:        user.ID,
		Cart:          cart.NewStore(emitter),
		Wishlist:      wishlist.NewStore(emitter),
		Notifications: emitter,
		email:         user.Email,
		lastSeen:      now,
	}
	for _, item := range saved {
		fresh.Wishlist.Dispatch(wishlist.Add(item))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have opened the session while the snapshot loaded.
	if s, ok := m.sessions[user.ID]; ok {
		s.touch(user.Email, now)
		return s, nil
	}
	m.sessions[user.ID] = fresh
	m.logger.Debug("session opened", "user_id", user.ID, "wishlist_items", len(saved))
	return fresh, nil
}

// Drop discards the session of userID, if any.
func (m *Manager) Drop(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[userID]; ok {
		delete(m.sessions, userID)
		m.logger.Debug("session dropped", "user_id", userID)
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the timeout as of now and
// returns how many were evicted.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.idleTimeout {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Info("evicted idle sessions", "count", evicted, "remaining", len(m.sessions))
	}
	return evicted
}

// Run sweeps every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
