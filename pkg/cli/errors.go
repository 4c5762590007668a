// Package cli provides terminal output for the propcheck command.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/property"
)

// UnknownPropertyError reports a property name that is not registered.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property: %s", e.Name)
}

// ErrorFormatter provides user-friendly error messages.
type ErrorFormatter struct{}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{}
}

// FormatError formats an error into a user-friendly message.
func (f *ErrorFormatter) FormatError(err error) string {
	return f.FormatErrorWithContext(err, nil)
}

// FormatErrorWithContext formats an error with the names of the known properties.
func (f *ErrorFormatter) FormatErrorWithContext(err error, known []string) string {
	if err == nil {
		return ""
	}

	var unknown *UnknownPropertyError
	var invalid *config.InvalidConfigError
	var path *config.PathValidationError
	var exhausted *property.ExhaustedError

	switch {
	case errors.As(err, &unknown):
		return f.formatUnknownPropertyError(unknown, known)
	case errors.As(err, &invalid):
		return f.formatInvalidConfigError(invalid)
	case errors.As(err, &path):
		return fmt.Sprintf("Error: %s\n\nCheck the --config flag or PROPCHECK_CONFIG_DIR.", path.Error())
	case errors.As(err, &exhausted):
		return f.formatExhaustedError(exhausted)
	default:
		errMsg := err.Error()
		if strings.Contains(errMsg, "invalid constraint expression") {
			return f.formatExpressionError(errMsg)
		}
		return fmt.Sprintf("Error: %s", errMsg)
	}
}

func (f *ErrorFormatter) formatUnknownPropertyError(err *UnknownPropertyError, known []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: Property '%s' does not exist.\n\n", err.Name))

	if suggestions := f.SuggestSimilar(err.Name, known); len(suggestions) > 0 {
		sb.WriteString("Did you mean:\n")
		for _, suggestion := range suggestions {
			sb.WriteString(fmt.Sprintf("  %s\n", suggestion))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("To see all properties, use:\n")
	sb.WriteString("  propcheck list")
	return sb.String()
}

func (f *ErrorFormatter) formatInvalidConfigError(err *config.InvalidConfigError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: Invalid configuration field '%s': %s.\n\n", err.Field, err.Reason))
	sb.WriteString("Defaults:\n")
	def := config.Default()
	sb.WriteString(fmt.Sprintf("  minimum_tests: %d\n", def.MinimumTests))
	sb.WriteString(fmt.Sprintf("  log_level: %s\n", def.LogLevel))
	sb.WriteString(fmt.Sprintf("  max_minimization_depth: %d", def.MaxMinimizationDepth))
	return sb.String()
}

func (f *ErrorFormatter) formatExhaustedError(err *property.ExhaustedError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s could not generate enough arguments in %d attempts.\n\n", err.Test, err.Attempts))
	sb.WriteString("Troubleshooting:\n")
	sb.WriteString("  - Remove or relax --reject expressions\n")
	sb.WriteString("  - Replace rejecting constraints with ProducedBy or MustBeIn\n")
	sb.WriteString("  - Lower --tests")
	return sb.String()
}

func (f *ErrorFormatter) formatExpressionError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", errMsg))
	sb.WriteString("Expressions combine these functions with &&, || and !:\n")
	sb.WriteString("  ArgEquals(i, \"text\"), ArgContains(i, \"text\")\n")
	sb.WriteString("  ArgLess(i, n), ArgGreater(i, n)\n")
	sb.WriteString("  ArgLenLess(i, n), ArgLenGreater(i, n)\n")
	sb.WriteString("Arguments are numbered from 1.")
	return sb.String()
}

// SuggestSimilar suggests known names close to name.
func (f *ErrorFormatter) SuggestSimilar(name string, known []string) []string {
	if len(known) == 0 {
		return nil
	}

	var suggestions []string
	nameLower := strings.ToLower(name)

	for _, candidate := range known {
		candidateLower := strings.ToLower(candidate)

		if nameLower == candidateLower {
			return []string{candidate}
		}
		if strings.HasPrefix(candidateLower, nameLower) || strings.Contains(candidateLower, nameLower) {
			suggestions = append(suggestions, candidate)
			continue
		}
		if levenshteinDistance(nameLower, candidateLower) <= 2 {
			suggestions = append(suggestions, candidate)
		}
	}

	return suggestions
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
