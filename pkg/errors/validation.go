package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It is applied to input and output paths received through the API and CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateFormats checks every requested output format against allowed.
func ValidateFormats(formats []string, allowed map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !allowed[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	return nil
}
