// Package ordering implements the drag-and-drop reducer behind the section order list.
package ordering

import "fmt"

// IndexError reports a drag source outside the list
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for list of length %d", e.Index, e.Len)
}

// Move removes the item at from and reinserts it at to, returning a new slice.
// The input is never modified. to is clamped to the list bounds.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) {
		return nil, &IndexError{Index: from, Len: len(items)}
	}

	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	to = min(max(to, 0), len(out))
	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved

	return out, nil
}

// DropResult describes the end of a drag: where the item came from and where
// it landed. A nil Destination means it was dropped outside the list.
type DropResult struct {
	Source      int  `json:"source"`
	Destination *int `json:"destination"`
}

// Dropped returns a DropResult that landed at destination.
func Dropped(source, destination int) DropResult {
	return DropResult{Source: source, Destination: &destination}
}

// Apply reduces a drop onto items. A drop outside the list returns items unchanged.
func Apply[T any](items []T, result DropResult) ([]T, error) {
	if result.Destination == nil {
		return append([]T{}, items...), nil
	}
	return Move(items, result.Source, *result.Destination)
}
