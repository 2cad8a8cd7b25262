package types

import "github.com/jonathan/resume-builder/internal/layout"

// Bundle is everything needed to render a resume: the document, the section
// order and the flattened layout. Its JSON form is the generate-pdf payload.
type Bundle struct {
	Resume       Resume      `json:"resume_data"`
	SectionOrder []SectionID `json:"section_order"`
	layout.Payload
}

// NewBundle assembles a bundle from its parts.
func NewBundle(resume Resume, order []SectionID, settings layout.Settings) Bundle {
	return Bundle{
		Resume:       resume,
		SectionOrder: append([]SectionID{}, order...),
		Payload:      settings.Payload(),
	}
}

// Layout returns the bundle's layout settings.
func (b Bundle) Layout() layout.Settings {
	return b.Payload.Settings()
}

// Order returns the section order, falling back to the default when empty.
func (b Bundle) Order() []SectionID {
	if len(b.SectionOrder) == 0 {
		return DefaultOrder()
	}
	return b.SectionOrder
}
