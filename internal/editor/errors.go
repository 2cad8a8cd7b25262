// Package editor holds the in-memory state of one resume being edited.
package editor

import (
	"fmt"
	"strings"
)

// FieldError reports an unknown or read-only field name. Allowed, when set,
// lists the names that would have been accepted.
type FieldError struct {
	Section string
	Field   string
	Allowed []string
}

func (e *FieldError) Error() string {
	if e.Section == "" {
		if len(e.Allowed) > 0 {
			return fmt.Sprintf("unknown field: %s (expected one of %s)", e.Field, strings.Join(e.Allowed, ", "))
		}
		return fmt.Sprintf("unknown field: %s", e.Field)
	}
	return fmt.Sprintf("unknown field %q in section %s", e.Field, e.Section)
}

// ItemError reports an item index outside a section's array
type ItemError struct {
	Section string
	Index   int
	Len     int
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s item %d out of range (have %d)", e.Section, e.Index, e.Len)
}
