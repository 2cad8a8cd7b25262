package ordering

import (
	"fmt"
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

// DuplicateSectionError is returned when an order lists a section twice
type DuplicateSectionError struct {
	Section types.SectionID
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %q appears more than once", e.Section)
}

// Order is a list of unique, known section identifiers.
type Order struct {
	ids []types.SectionID
}

// NewOrder builds an order from raw section names, normalising aliases and
// rejecting unknown or duplicate sections.
func NewOrder(names []string) (*Order, error) {
	ids := make([]types.SectionID, 0, len(names))
	for _, name := range names {
		id, err := types.ParseSectionID(name)
		if err != nil {
			return nil, err
		}
		if slices.Contains(ids, id) {
			return nil, &DuplicateSectionError{Section: id}
		}
		ids = append(ids, id)
	}
	return &Order{ids: ids}, nil
}

// FromIDs is NewOrder for already typed identifiers.
func FromIDs(ids []types.SectionID) (*Order, error) {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return NewOrder(names)
}

// DefaultOrder returns the order used by new documents.
func DefaultOrder() *Order {
	return &Order{ids: types.DefaultOrder()}
}

// IDs returns a copy of the section identifiers in order.
func (o *Order) IDs() []types.SectionID {
	return slices.Clone(o.ids)
}

// Len returns the number of sections in the order.
func (o *Order) Len() int {
	return len(o.ids)
}

// Contains reports whether id is in the order.
func (o *Order) Contains(id types.SectionID) bool {
	return slices.Contains(o.ids, id)
}

// Add appends a section if it is not already present.
func (o *Order) Add(name string) error {
	id, err := types.ParseSectionID(name)
	if err != nil {
		return err
	}
	if !o.Contains(id) {
		o.ids = append(o.ids, id)
	}
	return nil
}

// Remove drops a section from the order. Removing an absent section is a no-op.
func (o *Order) Remove(name string) error {
	id, err := types.ParseSectionID(name)
	if err != nil {
		return err
	}
	o.ids = slices.DeleteFunc(o.ids, func(s types.SectionID) bool { return s == id })
	return nil
}

// Missing lists available sections not yet in the order, in canonical order.
func (o *Order) Missing() []types.SectionID {
	missing := make([]types.SectionID, 0, len(types.AvailableSections))
	for _, id := range types.AvailableSections {
		if !o.Contains(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// Apply reduces a drop result onto the order.
func (o *Order) Apply(result DropResult) error {
	ids, err := Apply(o.ids, result)
	if err != nil {
		return err
	}
	o.ids = ids
	return nil
}

// Drag starts tracking a drag gesture over the current order.
func (o *Order) Drag() *Drag {
	return NewDrag(len(o.ids))
}
