package domain

import "errors"

// ErrEmptyLanguage is returned when settings carry no language.
var ErrEmptyLanguage = errors.New("language cannot be empty")

// Settings holds a user's notification and locale preferences.
type Settings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	MarketingEmails    bool   `json:"marketingEmails"`
	OrderUpdates       bool   `json:"orderUpdates"`
	NewArrivals        bool   `json:"newArrivals"`
	Language           string `json:"language"`
	Timezone           string `json:"timezone"`
	TwoFactorAuth      bool   `json:"twoFactorAuth"`
}

// DefaultSettings returns the preferences of a user who never saved any.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: true,
		MarketingEmails:    false,
		OrderUpdates:       true,
		NewArrivals:        true,
		Language:           "en",
		Timezone:           "EST",
		TwoFactorAuth:      false,
	}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if s.Language == "" {
		return ErrEmptyLanguage
	}
	return nil
}
