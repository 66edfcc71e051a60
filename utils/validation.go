package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/shopspring/decimal"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// SanitizeString escapes HTML and strips tags from user input
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(sanitized, ""))
}

// ValidateUsername checks username format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-20 characters of letters, numbers and underscores")
	}
	return nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasNumber.MatchString(password) {
		return fmt.Errorf("password must contain upper case, lower case and a number")
	}
	return nil
}

// ValidatePromotionValue enforces per-type bounds on the discount value.
func ValidatePromotionValue(promoType models.PromotionType, value decimal.Decimal) error {
	switch promoType {
	case models.PromotionTypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("percentage value must be between 0 and 100")
		}
	case models.PromotionTypeFixedAmount:
		if value.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("fixed amount value must be greater than 0")
		}
	case models.PromotionTypeFreeShipping:
		// value is ignored for free shipping
	default:
		return fmt.Errorf("unknown promotion type: %s", promoType)
	}
	return nil
}

// ValidatePromotionWindow checks that the validity window is ordered.
func ValidatePromotionWindow(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date must not be before start date")
	}
	return nil
}
