package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
)

// ValidateEmail reports whether email has the shape local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether phone contains only digits, spaces, dashes,
// parentheses and an optional leading plus sign.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// NormalizeEmail lowercases and trims an email for comparisons and keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
