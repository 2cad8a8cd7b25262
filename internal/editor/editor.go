package editor

import (
	"maps"
	"slices"
	"sync"

	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/ordering"
	"github.com/jonathan/resume-builder/internal/types"
)

// State is a consistent copy of everything the editor holds
type State struct {
	Resume    types.Resume      `json:"resume_data"`
	Order     []types.SectionID `json:"section_order"`
	Available []types.SectionID `json:"available_sections"`
	Layout    layout.Settings   `json:"layout"`
	Revision  uint64            `json:"revision"`
}

// Editor is the root state container for one resume: the document, the
// section order and the layout settings. It is safe for concurrent use.
// Every successful mutation bumps the revision and wakes subscribers.
type Editor struct {
	mu       sync.RWMutex
	resume   types.Resume
	order    *ordering.Order
	settings layout.Settings
	drag     *ordering.Drag
	revision uint64

	subMu   sync.Mutex
	subs    map[int]chan uint64
	nextSub int
}

// New returns an editor holding the sample resume with default order and layout.
func New() *Editor {
	return &Editor{
		resume:   types.SampleResume(),
		order:    ordering.DefaultOrder(),
		settings: layout.Defaults(),
		subs:     make(map[int]chan uint64),
	}
}

// FromBundle returns an editor seeded from a saved bundle.
func FromBundle(b types.Bundle) (*Editor, error) {
	order, err := ordering.FromIDs(b.Order())
	if err != nil {
		return nil, err
	}
	settings := b.Layout()
	if settings.FontSize == 0 {
		settings = layout.Defaults()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Editor{
		resume:   b.Resume.Clone(),
		order:    order,
		settings: settings,
		subs:     make(map[int]chan uint64),
	}, nil
}

// mutate runs fn under the write lock and publishes a new revision if it succeeds.
func (e *Editor) mutate(fn func() error) error {
	e.mu.Lock()
	if err := fn(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.revision++
	rev := e.revision
	e.mu.Unlock()

	e.publish(rev)
	return nil
}

// Revision returns the number of successful mutations so far.
func (e *Editor) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Snapshot returns a deep copy of the current state.
func (e *Editor) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return State{
		Resume:    e.resume.Clone(),
		Order:     e.order.IDs(),
		Available: e.order.Missing(),
		Layout:    e.settings,
		Revision:  e.revision,
	}
}

// Bundle returns the current document, order and layout ready for rendering.
func (e *Editor) Bundle() types.Bundle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return types.NewBundle(e.resume.Clone(), e.order.IDs(), e.settings)
}

// UpdateField sets one of the personal fields by JSON name.
func (e *Editor) UpdateField(name, value string) error {
	return e.UpdateFields(map[string]string{name: value})
}

// UpdateFields sets several personal fields in one revision. Nothing is
// changed if any name is unknown.
func (e *Editor) UpdateFields(values map[string]string) error {
	return e.mutate(func() error {
		r := e.resume
		for _, name := range slices.Sorted(maps.Keys(values)) {
			field := scalarField(&r, name)
			if field == nil {
				return &FieldError{Field: name, Allowed: ScalarFields}
			}
			*field = values[name]
		}
		e.resume = r
		return nil
	})
}

// AddItem appends an empty entry to a section and returns its index.
func (e *Editor) AddItem(section string) (int, error) {
	id, err := types.ParseSectionID(section)
	if err != nil {
		return 0, err
	}

	var index int
	err = e.mutate(func() error {
		addItem(&e.resume, id)
		index = e.resume.Len(id) - 1
		return nil
	})
	return index, err
}

// UpdateItem sets one key of one entry in a section.
func (e *Editor) UpdateItem(section string, index int, key, value string) error {
	return e.UpdateItemFields(section, index, map[string]string{key: value})
}

// UpdateItemFields sets several keys of one entry in one revision. Nothing
// is changed if any key is unknown for the section.
func (e *Editor) UpdateItemFields(section string, index int, values map[string]string) error {
	id, err := types.ParseSectionID(section)
	if err != nil {
		return err
	}

	return e.mutate(func() error {
		if n := e.resume.Len(id); index < 0 || index >= n {
			return &ItemError{Section: string(id), Index: index, Len: n}
		}
		r := e.resume.Clone()
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if !setItemField(&r, id, index, key, values[key]) {
				return &FieldError{Section: string(id), Field: key}
			}
		}
		e.resume = r
		return nil
	})
}

// RemoveItem deletes one entry from a section.
func (e *Editor) RemoveItem(section string, index int) error {
	id, err := types.ParseSectionID(section)
	if err != nil {
		return err
	}

	return e.mutate(func() error {
		if n := e.resume.Len(id); index < 0 || index >= n {
			return &ItemError{Section: string(id), Index: index, Len: n}
		}
		removeItem(&e.resume, id, index)
		return nil
	})
}

// AddSection appends a section to the order if it is not there yet.
func (e *Editor) AddSection(section string) error {
	return e.mutate(func() error {
		return e.order.Add(section)
	})
}

// RemoveSection drops a section from the order.
func (e *Editor) RemoveSection(section string) error {
	return e.mutate(func() error {
		return e.order.Remove(section)
	})
}

// DragEnd applies a completed drop to the section order.
func (e *Editor) DragEnd(result ordering.DropResult) error {
	return e.mutate(func() error {
		e.drag = nil
		return e.order.Apply(result)
	})
}

// SetFontSize changes the font size within the settings panel range.
func (e *Editor) SetFontSize(size int) error {
	return e.mutate(func() error {
		s, err := e.settings.WithFontSize(size)
		if err != nil {
			return err
		}
		e.settings = s
		return nil
	})
}

// SetMargin changes one page margin within the settings panel range.
func (e *Editor) SetMargin(side layout.Side, inches float64) error {
	return e.mutate(func() error {
		s, err := e.settings.WithMargin(side, inches)
		if err != nil {
			return err
		}
		e.settings = s
		return nil
	})
}

// SetOneLineEducation toggles the compact education layout.
func (e *Editor) SetOneLineEducation(on bool) error {
	return e.mutate(func() error {
		e.settings.OneLineEducation = on
		return nil
	})
}

// SetLayout replaces all layout settings at once after validating them.
func (e *Editor) SetLayout(s layout.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return e.mutate(func() error {
		e.settings = s
		return nil
	})
}

// Reset restores the sample resume and the default section order. Layout is kept.
func (e *Editor) Reset() error {
	return e.mutate(func() error {
		e.resume = types.SampleResume()
		e.order = ordering.DefaultOrder()
		e.drag = nil
		return nil
	})
}

// Export returns the resume alone as indented JSON.
func (e *Editor) Export() ([]byte, error) {
	e.mu.RLock()
	resume := e.resume.Clone()
	e.mu.RUnlock()
	return exchange.Export(resume)
}

// ExportBundle returns the resume with its order and layout as indented JSON.
func (e *Editor) ExportBundle() ([]byte, error) {
	return exchange.ExportBundle(e.Bundle())
}

// Import replaces the document with an exported file. The section order and
// layout are only replaced when the file carries them.
func (e *Editor) Import(data []byte) error {
	imported, err := exchange.Import(data)
	if err != nil {
		return err
	}

	return e.mutate(func() error {
		if imported.SectionOrder != nil {
			order, err := ordering.FromIDs(imported.SectionOrder)
			if err != nil {
				return err
			}
			e.order = order
		}
		if imported.Layout != nil {
			e.settings = *imported.Layout
		}
		e.resume = imported.Resume
		e.drag = nil
		return nil
	})
}
