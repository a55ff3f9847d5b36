package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/store"
)

// GetUser returns the user with id.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewAccountServiceError("get_user", "failed to load user", err)
	}
	return user, nil
}

// ProfileUpdate replaces the editable profile fields.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateProfile validates and saves the profile, then refreshes the
// client's session record. Orders, wishlist, and settings stay keyed by the
// email they were saved under.
func (s *Service) UpdateProfile(
	ctx context.Context,
	clientID string,
	userID uuid.UUID,
	in ProfileUpdate,
) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if !domain.ValidateEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !domain.ValidatePhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = email
	user.Phone = phone
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrUserExists
		}
		s.logger.Error("failed to update profile", "error", redact.Error(err), "user_id", userID)
		return nil, NewAccountServiceError("update_profile", "failed to save user", err)
	}
	if err := s.sessions.ForClient(clientID).SetCurrentUser(ctx, user); err != nil {
		return nil, NewAccountServiceError("update_profile", "failed to refresh session", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}

// ChangePasswordInput is the content of the change-password form.
type ChangePasswordInput struct {
	Current string
	New     string
	Confirm string
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error {
	if in.Current == "" || in.New == "" || in.Confirm == "" {
		return ErrMissingFields
	}
	if in.New != in.Confirm {
		return ErrPasswordsDoNotMatch
	}
	if len(in.New) < s.minPassword {
		return &PasswordLengthError{Min: s.minPassword}
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.verifier.Compare(user.HashedPassword, in.Current); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(in.New)
	if err != nil {
		return NewAccountServiceError("change_password", "failed to hash password", err)
	}
	user.HashedPassword = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return NewAccountServiceError("change_password", "failed to save user", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// MinPasswordLength reports the enforced minimum password length.
func (s *Service) MinPasswordLength() int {
	return s.minPassword
}
