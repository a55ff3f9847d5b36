package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// JoinDateLayout renders the month a user registered, e.g. "January 2026".
const JoinDateLayout = "January 2006"

// User represents a registered storefront customer.
type User struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Phone          string    `json:"phone,omitempty"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	JoinDate       string    `json:"joinDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a User from registration data. The first and last names
// are taken from the first two space-separated words of the username.
// The caller supplies an already hashed password.
func NewUser(email, username, phone, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	first, last := SplitName(username)
	user := &User{
		ID:             uuid.New(),
		FirstName:      first,
		LastName:       last,
		Email:          NormalizeEmail(email),
		Username:       strings.TrimSpace(username),
		Phone:          strings.TrimSpace(phone),
		HashedPassword: hashedPassword,
		JoinDate:       now.Format(JoinDateLayout),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidateEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Phone != "" && !ValidatePhone(u.Phone) {
		return ErrInvalidPhone
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// DisplayName is the name used in greetings. Falls back to "User".
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
	if name == "" {
		name = u.Username
	}
	if name == "" {
		return "User"
	}
	return name
}

// SplitName returns the first and second words of name. A single-word name
// yields an empty last name.
func SplitName(name string) (first, last string) {
	parts := strings.Split(strings.TrimSpace(name), " ")
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
