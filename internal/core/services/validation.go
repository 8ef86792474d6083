package services

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/referendum-bg/anketa/internal/core/domain"
)

const (
	minFieldLength = 1
	maxFieldLength = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type normalizedInput struct {
	Name  string
	City  string
	Email string
}

// validateInput trims and normalizes the free-text submission fields.
// It is pure and performs no I/O; email comes back lowercased.
func validateInput(name, city, email string) (normalizedInput, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedCity := strings.TrimSpace(city)
	trimmedEmail := strings.TrimSpace(strings.ToLower(email))

	if !lengthInBounds(trimmedName) {
		return normalizedInput{}, domain.NewValidationError("invalid name")
	}
	if !lengthInBounds(trimmedCity) {
		return normalizedInput{}, domain.NewValidationError("invalid city")
	}
	if !emailPattern.MatchString(trimmedEmail) {
		return normalizedInput{}, domain.NewValidationError("invalid email address")
	}

	return normalizedInput{
		Name:  trimmedName,
		City:  trimmedCity,
		Email: trimmedEmail,
	}, nil
}

// lengthInBounds counts characters, not bytes: Cyrillic names and
// cities take two bytes per rune and must not lose half the budget.
func lengthInBounds(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minFieldLength && n <= maxFieldLength
}

// sanitizeHTML neutralizes & < > " ' before the value can reach any
// later HTML rendering context.
func sanitizeHTML(s string) string {
	return html.EscapeString(s)
}
