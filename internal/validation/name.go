package validation

import (
	"strings"
)

// ValidateName validates goal and profile names
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return newError(field, "is required")
	}

	if len(trimmed) > 100 {
		return newError(field, "is too long (max 100 characters)")
	}

	return nil
}
