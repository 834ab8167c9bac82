package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxNameLength bounds relationship tokens in strict parsing.
const maxNameLength = 256

// ValidateEntityName validates the identifying name field of an entity.
// Any non-empty string is a valid name.
func ValidateEntityName(name string) error {
	if name == "" {
		return New(ErrCodeMalformedInput, "entity name cannot be empty")
	}
	return nil
}

// ValidateRelationshipToken validates a raw relationship token as authored,
// glyph included, for strict parsing. Direction is not checked here.
//
// Strict validation rules:
//   - No empty tokens
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateRelationshipToken(token string) error {
	if token == "" {
		return New(ErrCodeMalformedInput, "relationship name cannot be empty")
	}

	if len(token) > maxNameLength {
		return New(ErrCodeMalformedInput, "relationship name too long (max %d characters)", maxNameLength)
	}

	for _, r := range token {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedInput, "relationship name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local document path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
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

// ValidateFormat reports an INVALID_FORMAT error unless format is one of allowed.
// Comparison is case-insensitive.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
