package exchange

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// PayloadError reports a generate-pdf body that could not be read at all
type PayloadError struct {
	Message string
	Cause   error
}

func (e *PayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid payload: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid payload: %s", e.Message)
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}

// DecodePayload reads a generate-pdf request body. The resume comes from
// "resume_data" or else from the body itself. Layout fields fall back to
// defaults, unknown section names are dropped and an empty order becomes
// the default one. No schema validation is applied.
func DecodePayload(data []byte) (types.Bundle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return types.Bundle{}, &PayloadError{Message: "body must be a JSON object", Cause: err}
	}

	resumeJSON := data
	if wrapped, ok := fields["resume_data"]; ok && !isNull(wrapped) {
		resumeJSON = wrapped
	}

	var resume types.Resume
	if err := json.Unmarshal(resumeJSON, &resume); err != nil {
		return types.Bundle{}, &PayloadError{Message: "resume_data is not a resume", Cause: err}
	}

	return types.NewBundle(normalize(resume), sectionOrder(fields["section_order"]), layout.Lenient(fields)), nil
}

func sectionOrder(raw json.RawMessage) []types.SectionID {
	var names []string
	if len(raw) == 0 || json.Unmarshal(raw, &names) != nil {
		return types.DefaultOrder()
	}

	order := make([]types.SectionID, 0, len(names))
	for _, name := range names {
		if id, err := types.ParseSectionID(name); err == nil {
			order = append(order, id)
		}
	}
	if len(order) == 0 {
		return types.DefaultOrder()
	}
	return order
}
