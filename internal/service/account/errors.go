package account

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the account service. The API layer turns them
// into client-facing messages.
var (
	ErrMissingFields        = errors.New("required fields are missing")
	ErrPasswordsDoNotMatch  = errors.New("passwords do not match")
	ErrTermsNotAccepted     = errors.New("terms and conditions not accepted")
	ErrUserExists           = errors.New("user with this email or username already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrIncorrectPassword    = errors.New("current password is incorrect")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrMissingDependency    = errors.New("account service dependency is nil")
	ErrRemoteLoginMalformed = errors.New("remote login response is missing a token")
)

// AccountServiceError wraps unexpected failures with the operation that hit them.
type AccountServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for AccountServiceError.
func (e *AccountServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("account service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("account service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AccountServiceError) Unwrap() error {
	return e.Err
}

// NewAccountServiceError creates a new AccountServiceError.
func NewAccountServiceError(operation, message string, err error) *AccountServiceError {
	return &AccountServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// PasswordLengthError reports a password shorter than Min. It matches
// ErrPasswordTooShort under errors.Is.
type PasswordLengthError struct {
	Min int
}

func (e *PasswordLengthError) Error() string {
	return fmt.Sprintf("%v: minimum %d characters", ErrPasswordTooShort, e.Min)
}

// Is reports whether target is ErrPasswordTooShort.
func (e *PasswordLengthError) Is(target error) bool {
	return target == ErrPasswordTooShort
}
