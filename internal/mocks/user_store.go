package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Without function
// fields it behaves like a small in-memory store.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	ListFn          func(ctx context.Context) ([]*domain.User, error)

	mu    sync.Mutex
	users []*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a mock store holding users.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	return &MockUserStore{users: users}
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrEmailExists
		}
		if strings.EqualFold(u.Username, user.Username) {
			return store.ErrUsernameExists
		}
	}
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return m.find(func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == user.ID {
			copied := *user
			m.users[i] = &copied
			return nil
		}
	}
	return store.ErrUserNotFound
}

// List implements store.UserStore.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockUserStore) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}
