package types

import (
	"fmt"
	"strings"
)

// SectionID identifies an orderable resume section
type SectionID string

// Known section identifiers
const (
	SectionEducation    SectionID = "education"
	SectionSkills       SectionID = "skills"
	SectionExperience   SectionID = "experience"
	SectionProjects     SectionID = "projects"
	SectionCertificates SectionID = "certificates"
)

// DefaultSectionOrder is the order used for new and reset documents.
var DefaultSectionOrder = []SectionID{
	SectionEducation,
	SectionSkills,
	SectionExperience,
	SectionProjects,
}

// AvailableSections lists every section that can be placed in the order, in canonical order.
var AvailableSections = []SectionID{
	SectionEducation,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionCertificates,
}

// UnknownSectionError is returned when a section identifier is not recognised
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Name)
}

// ParseSectionID normalises a section name. Matching is case-insensitive and
// "certification" is accepted as an alias of "certificates".
func ParseSectionID(name string) (SectionID, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "certification" {
		normalized = string(SectionCertificates)
	}
	for _, id := range AvailableSections {
		if string(id) == normalized {
			return id, nil
		}
	}
	return "", &UnknownSectionError{Name: name}
}

// DefaultOrder returns a fresh copy of DefaultSectionOrder.
func DefaultOrder() []SectionID {
	return append([]SectionID{}, DefaultSectionOrder...)
}

// Title is the heading used for a section in previews.
func (s SectionID) Title() string {
	switch s {
	case SectionSkills:
		return "Technical Skills"
	case SectionCertificates:
		return "Certification"
	default:
		if s == "" {
			return ""
		}
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}
