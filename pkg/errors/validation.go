package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxTopK bounds the ranking size accepted from untrusted input (API queries).
const MaxTopK = 10000

// ValidateAirportCode validates an airport key supplied by a user, e.g. the
// {code} path segment of the API. Dataset records are not run through this:
// the registry accepts any key the data contains.
//
// The rules are intentionally conservative:
//   - No empty codes
//   - No control characters or whitespace
//   - Maximum length of 8 characters (IATA is 3, ICAO is 4)
func ValidateAirportCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "airport code cannot be empty")
	}

	if len(code) > 8 {
		return New(ErrCodeInvalidInput, "airport code too long (max 8 characters)")
	}

	for _, r := range code {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "airport code contains invalid characters")
		}
	}

	if !airportCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid airport code: %q", code)
	}

	return nil
}

// airportCodeRegex matches IATA/ICAO style codes.
var airportCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateTopK validates a ranking size. Zero means "no truncation".
func ValidateTopK(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidInput, "top must not be negative, got %d", k)
	}
	if k > MaxTopK {
		return New(ErrCodeInvalidInput, "top too large (max %d)", MaxTopK)
	}
	return nil
}

// ValidatePath validates a dataset file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateColumnName validates a CSV header name used for column lookup.
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "column name cannot be empty")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
