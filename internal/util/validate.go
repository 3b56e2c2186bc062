package util

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Form validation rules. Messages are shown inline next to the field that
// failed, so they are written for end users.
const (
	usernameMinLen  = 3
	usernameMaxLen  = 20
	passwordMinLen  = 6
	passwordMaxLen  = 40
	emailMaxLen     = 50
	siteNameMaxLen  = 255
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername enforces the account username rules.
func ValidateUsername(value string) error {
	if value == "" {
		return errors.New("Username is required")
	}
	if len(value) < usernameMinLen {
		return fmt.Errorf("Username must be at least %d characters", usernameMinLen)
	}
	if len(value) > usernameMaxLen {
		return fmt.Errorf("Username must not exceed %d characters", usernameMaxLen)
	}
	if !usernamePattern.MatchString(value) {
		return errors.New("Username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail enforces the account email rules.
func ValidateEmail(value string) error {
	if value == "" {
		return errors.New("Email is required")
	}
	if len(value) > emailMaxLen {
		return fmt.Errorf("Email must not exceed %d characters", emailMaxLen)
	}
	if !emailPattern.MatchString(value) {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

// ValidatePassword enforces the account password rules.
func ValidatePassword(value string) error {
	if value == "" {
		return errors.New("Password is required")
	}
	if len(value) < passwordMinLen {
		return fmt.Errorf("Password must be at least %d characters", passwordMinLen)
	}
	if len(value) > passwordMaxLen {
		return fmt.Errorf("Password must not exceed %d characters", passwordMaxLen)
	}
	return nil
}

// ValidateWebsiteName enforces the website display-name rules.
func ValidateWebsiteName(value string) error {
	if value == "" {
		return errors.New("Website name is required")
	}
	if len(value) > siteNameMaxLen {
		return fmt.Errorf("Website name must not exceed %d characters", siteNameMaxLen)
	}
	return nil
}

// ValidateWebsiteDomain enforces that registered domains are full URLs.
func ValidateWebsiteDomain(value string) error {
	if value == "" {
		return errors.New("Domain is required")
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.New("Domain must start with http:// or https://")
	}
	return nil
}
