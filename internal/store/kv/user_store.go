package kv

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
)

// userRecord is the persisted form of a user. Unlike domain.User's JSON it
// carries the password hash.
type userRecord struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	JoinDate     string    `json:"joinDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Username:     u.Username,
		Phone:        u.Phone,
		PasswordHash: u.HashedPassword,
		JoinDate:     u.JoinDate,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Username:       r.Username,
		Phone:          r.Phone,
		HashedPassword: r.PasswordHash,
		JoinDate:       r.JoinDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// UserStore keeps every registered user in one list under store.KeyUsers.
type UserStore struct {
	kv store.KeyValueStore
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore backed by kv.
func NewUserStore(kv store.KeyValueStore) *UserStore {
	return &UserStore{kv: kv}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", errors.Join(store.ErrInvalidEntity, err))
	}

	err := updateJSON(ctx, s.kv, store.KeyUsers, func(users []userRecord) ([]userRecord, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Email, user.Email) {
				return nil, store.ErrEmailExists
			}
			if strings.EqualFold(existing.Username, user.Username) {
				return nil, store.ErrUsernameExists
			}
		}
		return append(users, toRecord(user)), nil
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			return err
		}
		return store.NewStoreError("user", "create", "failed to save user", err)
	}
	return nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.find(ctx, "get_by_id", func(r userRecord) bool { return r.ID == id })
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	return s.find(ctx, "get_by_email", func(r userRecord) bool { return strings.EqualFold(r.Email, email) })
}

// GetByUsername implements store.UserStore.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	return s.find(ctx, "get_by_username", func(r userRecord) bool { return strings.EqualFold(r.Username, username) })
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "update", "invalid user", errors.Join(store.ErrInvalidEntity, err))
	}

	err := updateJSON(ctx, s.kv, store.KeyUsers, func(users []userRecord) ([]userRecord, error) {
		idx := -1
		for i, existing := range users {
			if existing.ID == user.ID {
				idx = i
				continue
			}
			if strings.EqualFold(existing.Email, user.Email) {
				return nil, store.ErrEmailExists
			}
		}
		if idx < 0 {
			return nil, store.ErrUserNotFound
		}
		next := slices.Clone(users)
		next[idx] = toRecord(user)
		return next, nil
	})
	if err != nil {
		if store.IsDuplicateError(err) || errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return store.NewStoreError("user", "update", "failed to save user", err)
	}
	return nil
}

// List implements store.UserStore.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to load users", err)
	}
	users := make([]*domain.User, len(records))
	for i, r := range records {
		users[i] = r.toDomain()
	}
	return users, nil
}

func (s *UserStore) load(ctx context.Context) ([]userRecord, error) {
	var records []userRecord
	if _, err := getJSON(ctx, s.kv, store.KeyUsers, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *UserStore) find(ctx context.Context, op string, match func(userRecord) bool) (*domain.User, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, store.NewStoreError("user", op, "failed to load users", err)
	}
	for _, r := range records {
		if match(r) {
			return r.toDomain(), nil
		}
	}
	return nil, store.ErrUserNotFound
}
