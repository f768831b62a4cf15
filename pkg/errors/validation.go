package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a data file path supplied by an untrusted caller
// (for example the data query parameter of the HTTP server). The path is
// resolved against a data directory, so it must stay inside it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// registryKeyRegex matches term and assignment keys such as "Fall 2016" or
// "assignment3".
var registryKeyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]*$`)

// ValidateKey validates a deadline registry key (term or assignment name).
func ValidateKey(kind, key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "%s cannot be empty", kind)
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidKey, "%s too long (max 64 characters)", kind)
	}
	if !registryKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid %s: %q", kind, key)
	}
	return nil
}
