package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scent-api/internal/api/shared"
	"github.com/phrazzld/scent-api/internal/platform/logger"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/phrazzld/scent-api/internal/service/account"
)

// AccountHandler serves registration, login and the profile pages.
type AccountHandler struct {
	accounts *account.Service
	sessions *SessionResolver
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *account.Service, sessions *SessionResolver, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger.With("component", "account_handler"),
	}
}

// Register handles POST /api/users/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.accounts.Register(r.Context(), shared.GetClientID(r.Context()), account.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AgreeToTerms:    req.AgreeToTerms,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.openSession(r, res)

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Token:   res.Token,
		User:    res.User,
		Data:    LoginData{Name: res.Name},
		Message: res.Greeting,
	})
}

// Login handles POST /api/users/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.accounts.Login(r.Context(), shared.GetClientID(r.Context()), account.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.openSession(r, res)

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token:   res.Token,
		User:    res.User,
		Data:    LoginData{Name: res.Name},
		Message: res.Greeting,
	})
}

// openSession warms the user's cart and wishlist. Failure only costs a
// lazy open on the next cart request.
func (h *AccountHandler) openSession(r *http.Request, res *account.AuthResult) {
	if err := h.sessions.Refresh(r.Context(), res.User); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("failed to open session",
			"user_id", res.User.ID,
			"error", redact.Error(err))
	}
}

// Logout handles POST /api/users/logout.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := shared.GetUserID(r.Context())
	if err := h.accounts.Logout(r.Context(), shared.GetClientID(r.Context()), userID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// RememberedEmail handles GET /api/users/remembered-email.
func (h *AccountHandler) RememberedEmail(w http.ResponseWriter, r *http.Request) {
	email, err := h.accounts.RememberedEmail(r.Context(), shared.GetClientID(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RememberedEmailResponse{
		Email:      email,
		RememberMe: email != "",
	})
}

// Me handles GET /api/users/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := shared.GetUserID(r.Context())
	user, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}

// UpdateProfile handles PUT /api/users/me.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := shared.GetUserID(r.Context())
	user, err := h.accounts.UpdateProfile(r.Context(), shared.GetClientID(r.Context()), userID, account.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.sessions.Refresh(r.Context(), user); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("failed to refresh session",
			"user_id", user.ID,
			"error", redact.Error(err))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		User:    user,
		Message: "Profile updated successfully",
	})
}

// ChangePassword handles PUT /api/users/me/password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := shared.GetUserID(r.Context())
	err := h.accounts.ChangePassword(r.Context(), userID, account.ChangePasswordInput{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
		Confirm: req.ConfirmPassword,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// Stats handles GET /api/users/me/stats.
func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, _ := shared.GetUserID(r.Context())
	stats, err := h.accounts.Stats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Settings handles GET /api/users/me/settings.
func (h *AccountHandler) Settings(w http.ResponseWriter, r *http.Request) {
	userID, _ := shared.GetUserID(r.Context())
	settings, err := h.accounts.Settings(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{Settings: settings})
}

// SaveSettings handles PUT /api/users/me/settings.
func (h *AccountHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := shared.GetUserID(r.Context())
	settings := req.toDomain()
	if err := h.accounts.SaveSettings(r.Context(), userID, settings); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		Settings: settings,
		Message:  "Settings saved successfully",
	})
}
