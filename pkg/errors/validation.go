package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateParticipantID validates a participant identifier.
// IDs are lookup keys used by every drawing call, so they must be short,
// printable and free of whitespace:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of 64 characters
func ValidateParticipantID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "participant id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "participant id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "participant id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// baseNameRegex matches output file base names (no extension, no directory).
var baseNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBaseName validates an output file base name.
// It ensures the name is a simple basename without path components.
func ValidateBaseName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "output name cannot contain path traversal sequences (..)")
	}

	if !baseNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPath, "invalid output name: %q", name)
	}

	return nil
}

// ValidateOutputDir validates an output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
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
