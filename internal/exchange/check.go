package exchange

import (
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/ordering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Check collects every schema, layout and section order problem in a
// generate-pdf body. Unlike DecodePayload it is strict. Only a body that is
// not a JSON object is an error; an empty result means the payload is clean.
func Check(data []byte) ([]schemas.FieldError, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &PayloadError{Message: "body must be a JSON object", Cause: err}
	}

	problems := []schemas.FieldError{}

	resumeJSON := data
	if wrapped, ok := fields["resume_data"]; ok {
		resumeJSON = wrapped
	}
	if err := schemas.ValidateResume(resumeJSON); err != nil {
		var ve *schemas.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		problems = append(problems, ve.Errors...)
	}

	p := layout.Defaults().Payload()
	if err := json.Unmarshal(data, &p); err != nil {
		problems = append(problems, schemas.FieldError{Field: "layout", Message: err.Error()})
	} else if err := p.Settings().Validate(); err != nil {
		var le *layout.Error
		if errors.As(err, &le) {
			problems = append(problems, schemas.FieldError{Field: le.Field, Message: le.Message})
		} else {
			problems = append(problems, schemas.FieldError{Field: "layout", Message: err.Error()})
		}
	}

	if raw, ok := fields["section_order"]; ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			problems = append(problems, schemas.FieldError{Field: "section_order", Message: "must be an array of section names"})
		} else {
			seen := make(map[types.SectionID]bool, len(names))
			for _, name := range names {
				id, err := types.ParseSectionID(name)
				if err != nil {
					problems = append(problems, schemas.FieldError{Field: "section_order", Message: err.Error()})
					continue
				}
				if seen[id] {
					dup := &ordering.DuplicateSectionError{Section: id}
					problems = append(problems, schemas.FieldError{Field: "section_order", Message: dup.Error()})
				}
				seen[id] = true
			}
		}
	}

	return problems, nil
}
