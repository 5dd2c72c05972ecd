// Package validation checks registration input before anything touches the store.
package validation

import (
	"regexp"
	"strings"

	"hindipath/internal/apperr"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegistration checks the three registration fields in the order the
// sign-up form reports them: presence, password length, email shape.
func ValidateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return apperr.Validation("All fields required")
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return ValidateEmail(email)
}

// ValidateEmail checks for a basic local@domain.tld shape
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return apperr.Validation("Invalid email")
	}
	return nil
}

// ValidatePassword checks the minimum length, counted in characters
func ValidatePassword(password string) error {
	if password == "" {
		return apperr.Validation("Password is required")
	}
	if len([]rune(password)) < MinPasswordLength {
		return apperr.Validation("Password must be at least 6 characters")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
