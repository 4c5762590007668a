package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/property"
)

func TestSuggestSimilar(t *testing.T) {
	f := NewErrorFormatter()
	known := []string{"identity-even", "increment-positive", "add-commutes"}

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"exact match wins", "Add-Commutes", []string{"add-commutes"}},
		{"prefix", "incr", []string{"increment-positive"}},
		{"substring", "even", []string{"identity-even"}},
		{"typo", "add-comutes", []string{"add-commutes"}},
		{"nothing close", "zzzzzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.SuggestSimilar(tt.in, known))
		})
	}
	assert.Nil(t, f.SuggestSimilar("x", nil))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("abc", "abd"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestFormatErrorWithContext(t *testing.T) {
	f := NewErrorFormatter()

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, f.FormatError(nil))
	})

	t.Run("unknown property", func(t *testing.T) {
		err := fmt.Errorf("run: %w", &UnknownPropertyError{Name: "identty-even"})
		msg := f.FormatErrorWithContext(err, []string{"identity-even", "add-commutes"})
		assert.Contains(t, msg, "Property 'identty-even' does not exist")
		assert.Contains(t, msg, "Did you mean:\n  identity-even\n")
		assert.NotContains(t, msg, "add-commutes")
		assert.Contains(t, msg, "propcheck list")
	})

	t.Run("invalid config", func(t *testing.T) {
		msg := f.FormatError(&config.InvalidConfigError{Field: "minimum_tests", Reason: "must be at least 1"})
		assert.Contains(t, msg, "Invalid configuration field 'minimum_tests': must be at least 1.")
		assert.Contains(t, msg, "minimum_tests: 100")
	})

	t.Run("path", func(t *testing.T) {
		msg := f.FormatError(&config.PathValidationError{Path: "/nope", Reason: "does not exist"})
		assert.Contains(t, msg, "PROPCHECK_CONFIG_DIR")
	})

	t.Run("exhausted", func(t *testing.T) {
		msg := f.FormatError(&property.ExhaustedError{Test: "p", Attempts: 500})
		assert.Contains(t, msg, "p could not generate enough arguments in 500 attempts")
		assert.Contains(t, msg, "--reject")
	})

	t.Run("expression", func(t *testing.T) {
		msg := f.FormatError(errors.New("invalid constraint expression: unexpected token"))
		assert.Contains(t, msg, "ArgLess(i, n)")
		assert.Contains(t, msg, "numbered from 1")
	})

	t.Run("other", func(t *testing.T) {
		assert.Equal(t, "Error: boom", f.FormatError(errors.New("boom")))
	})
}
