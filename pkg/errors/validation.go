package errors

import (
	"strings"
	"unicode"
)

// ValidateTypeName validates a type name coming from a model file or an
// API request before it is used as a graph vertex key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No record-label metacharacters ({, }, |, ")
//   - Maximum length of 256 characters
//
// Display-level escaping is handled separately by the label grammar; this
// check only keeps obviously broken identifiers out of the graph.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "type name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "type name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "type name contains control characters")
		}
	}

	if i := strings.IndexAny(name, `{}|"`); i >= 0 {
		return New(ErrCodeInvalidName, "type name contains invalid character %q", name[i])
	}

	return nil
}
