package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/authclient"
	"github.com/phrazzld/scent-api/internal/cart"
	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/phrazzld/scent-api/internal/checkout"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/service/account"
	"github.com/phrazzld/scent-api/internal/service/auth"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/phrazzld/scent-api/internal/wishlist"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never reach clients.
func MapErrorToStatusCode(err error) int {
	var remote *authclient.RemoteError
	if errors.As(err, &remote) {
		if remote.Status >= 400 && remote.Status < 500 {
			return remote.Status
		}
		return http.StatusBadGateway
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, ErrNotInWishlist),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, account.ErrUserExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, account.ErrMissingFields),
		errors.Is(err, account.ErrPasswordsDoNotMatch),
		errors.Is(err, account.ErrTermsNotAccepted),
		errors.Is(err, account.ErrPasswordTooShort),
		errors.Is(err, account.ErrIncorrectPassword),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOrderStatus),
		errors.Is(err, domain.ErrEmptyLanguage),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, cart.ErrMissingID),
		errors.Is(err, wishlist.ErrMissingID),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Upstream errors
	case errors.Is(err, account.ErrRemoteLoginMalformed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for err.
// Messages from the remote login service are passed through unchanged.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedErrorMessage
	}

	var remote *authclient.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	var short *account.PasswordLengthError
	if errors.As(err, &short) {
		return fmt.Sprintf("Password must be at least %d characters", short.Min)
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, account.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, account.ErrMissingFields):
		return "Please fill in all required fields"
	case errors.Is(err, account.ErrPasswordsDoNotMatch):
		return "Passwords do not match"
	case errors.Is(err, account.ErrTermsNotAccepted):
		return "Please agree to the terms and conditions"
	case errors.Is(err, account.ErrPasswordTooShort):
		return "Password is too short"
	case errors.Is(err, account.ErrIncorrectPassword):
		return "Current password is incorrect"
	case errors.Is(err, account.ErrUserExists),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrUsernameExists):
		return "User with this email or username already exists"
	case errors.Is(err, account.ErrRemoteLoginMalformed):
		return authclient.DefaultMessage

	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrEmptyEmail):
		return "Please enter a valid email address"
	case errors.Is(err, domain.ErrInvalidPhone):
		return "Please enter a valid phone number"
	case errors.Is(err, domain.ErrEmptyUsername):
		return "Please fill in all required fields"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be positive"
	case errors.Is(err, domain.ErrNegativePrice):
		return "Price cannot be negative"
	case errors.Is(err, domain.ErrInvalidOrderStatus):
		return "Invalid order status"
	case errors.Is(err, domain.ErrEmptyLanguage):
		return "Language is required"
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, cart.ErrMissingID),
		errors.Is(err, wishlist.ErrMissingID):
		return "Item id is required"

	case errors.Is(err, checkout.ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, catalog.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, ErrNotInWishlist):
		return "Item not found in wishlist"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Invalid request format"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return unexpectedErrorMessage
	}
}

// HandleAPIError responds with the status and safe message for err and
// logs the redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// SanitizeValidationError turns a validator error into a short message
// naming the field and the failed rule.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
