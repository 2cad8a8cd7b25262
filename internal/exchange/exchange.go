// Package exchange serialises resumes to JSON files and reads them back.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/ordering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ExportFilename is the suggested name for a downloaded export
const ExportFilename = "resume.json"

// ErrInvalidImport is returned for any file that cannot be imported
var ErrInvalidImport = errors.New("Invalid JSON file. Please provide a valid resume.json export.") //nolint:staticcheck // user-facing message

// ImportError wraps ErrInvalidImport with the underlying reason
type ImportError struct {
	Cause error
}

func (e *ImportError) Error() string {
	return ErrInvalidImport.Error()
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *ImportError) Unwrap() []error {
	return []error{ErrInvalidImport, e.Cause}
}

// Imported is the result of reading an export. SectionOrder and Layout are
// nil when the file did not carry them, in which case callers keep their
// current values.
type Imported struct {
	Resume       types.Resume
	SectionOrder []types.SectionID
	Layout       *layout.Settings
}

// Export writes the resume alone as indented JSON, the shape of resume.json.
func Export(resume types.Resume) ([]byte, error) {
	return marshal(resume)
}

// ExportBundle writes the resume wrapped with its section order and layout.
func ExportBundle(bundle types.Bundle) ([]byte, error) {
	return marshal(bundle)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Import reads either a raw resume or one wrapped under "resume_data".
// A "section_order" array and layout fields are picked up when present.
// Layout values outside the settings panel ranges reject the file.
func Import(data []byte) (*Imported, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ImportError{Cause: err}
	}

	resumeJSON := data
	if wrapped, ok := fields["resume_data"]; ok && !isNull(wrapped) {
		resumeJSON = wrapped
	}

	if err := schemas.ValidateResume(resumeJSON); err != nil {
		return nil, &ImportError{Cause: err}
	}

	var resume types.Resume
	if err := json.Unmarshal(resumeJSON, &resume); err != nil {
		return nil, &ImportError{Cause: err}
	}

	result := &Imported{Resume: normalize(resume)}

	if raw, ok := fields["section_order"]; ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err == nil {
			order, err := ordering.NewOrder(names)
			if err != nil {
				return nil, &ImportError{Cause: err}
			}
			result.SectionOrder = order.IDs()
		}
	}

	if layout.Present(fields) {
		settings := layout.Lenient(fields)
		if err := settings.Validate(); err != nil {
			return nil, &ImportError{Cause: err}
		}
		result.Layout = &settings
	}

	return result, nil
}

// Bundle combines an import with fallbacks for anything the file omitted.
func (i *Imported) Bundle(order []types.SectionID, settings layout.Settings) types.Bundle {
	if i.SectionOrder != nil {
		order = i.SectionOrder
	}
	if i.Layout != nil {
		settings = *i.Layout
	}
	return types.NewBundle(i.Resume, order, settings)
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// normalize replaces nil arrays with empty ones so exports never carry null.
func normalize(r types.Resume) types.Resume {
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Experience == nil {
		r.Experience = []types.Experience{}
	}
	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
	if r.Skills == nil {
		r.Skills = []types.Skill{}
	}
	if r.Certificates == nil {
		r.Certificates = []types.Certificate{}
	}
	return r
}
