package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputNormalizes(t *testing.T) {
	got, err := validateInput("  Ivan  ", " Sofia ", " Ivan@X.com ")
	require.NoError(t, err)

	assert.Equal(t, "Ivan", got.Name)
	assert.Equal(t, "Sofia", got.City)
	assert.Equal(t, "ivan@x.com", got.Email)
}

func TestValidateInputRejections(t *testing.T) {
	longField := strings.Repeat("a", 101)

	tests := []struct {
		testName string
		name     string
		city     string
		email    string
		wantErr  string
	}{
		{"empty name", "   ", "Sofia", "ivan@x.com", "invalid name"},
		{"name too long", longField, "Sofia", "ivan@x.com", "invalid name"},
		{"empty city", "Ivan", "", "ivan@x.com", "invalid city"},
		{"city too long", "Ivan", longField, "ivan@x.com", "invalid city"},
		{"not an email", "Ivan", "Sofia", "not-an-email", "invalid email address"},
		{"email missing domain dot", "Ivan", "Sofia", "ivan@localhost", "invalid email address"},
		{"email with spaces", "Ivan", "Sofia", "iv an@x.com", "invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			_, err := validateInput(tt.name, tt.city, tt.email)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateInputBoundaryLengths(t *testing.T) {
	exactMax := strings.Repeat("a", 100)

	got, err := validateInput("a", exactMax, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, exactMax, got.City)
}

func TestValidateInputCountsCharactersNotBytes(t *testing.T) {
	// 60 Cyrillic runes are 120 bytes but well within the 100-character
	// bound and must be accepted.
	cyrillicName := strings.Repeat("я", 60)

	got, err := validateInput(cyrillicName, "София", "ivan@x.com")
	require.NoError(t, err)
	assert.Equal(t, cyrillicName, got.Name)
	assert.Equal(t, "София", got.City)

	// Exactly 100 runes is still in bounds; 101 is not.
	_, err = validateInput(strings.Repeat("я", 100), "София", "ivan@x.com")
	assert.NoError(t, err)

	_, err = validateInput(strings.Repeat("я", 101), "София", "ivan@x.com")
	require.Error(t, err)
	assert.Equal(t, "invalid name", err.Error())
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Ivan&lt;/b&gt;", sanitizeHTML("<b>Ivan</b>"))
	assert.Equal(t, "Veliko &amp; Tarnovo", sanitizeHTML("Veliko & Tarnovo"))
	assert.NotContains(t, sanitizeHTML(`"quoted" 'city'`), `"`)
	assert.NotContains(t, sanitizeHTML(`"quoted" 'city'`), `'`)
}
