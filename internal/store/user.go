package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrEmailExists or ErrUsernameExists when either is already
	// taken, compared case-insensitively.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, ignoring case.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username, ignoring case.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update replaces an existing user's details.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email another user has.
	Update(ctx context.Context, user *domain.User) error

	// List returns every registered user in registration order.
	List(ctx context.Context) ([]*domain.User, error)
}
