package layout

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the flat wire form of Settings used by the generate-pdf endpoint
// and by exported bundles.
type Payload struct {
	FontSize         int     `json:"font_size"`
	MarginTop        float64 `json:"margin_top"`
	MarginBottom     float64 `json:"margin_bottom"`
	MarginLeft       float64 `json:"margin_left"`
	MarginRight      float64 `json:"margin_right"`
	OneLineEducation bool    `json:"one_line_education"`
}

// Payload flattens the settings.
func (s Settings) Payload() Payload {
	return Payload{
		FontSize:         s.FontSize,
		MarginTop:        s.Margins.Top,
		MarginBottom:     s.Margins.Bottom,
		MarginLeft:       s.Margins.Left,
		MarginRight:      s.Margins.Right,
		OneLineEducation: s.OneLineEducation,
	}
}

// Settings rebuilds settings from the flat form without any validation.
func (p Payload) Settings() Settings {
	return Settings{
		FontSize: p.FontSize,
		Margins: Margins{
			Top:    p.MarginTop,
			Bottom: p.MarginBottom,
			Left:   p.MarginLeft,
			Right:  p.MarginRight,
		},
		OneLineEducation: p.OneLineEducation,
	}
}

// Lenient reads layout fields from a loosely typed request body. Missing,
// zero or unparsable values fall back to the defaults, so a sloppy client
// still gets a PDF.
func Lenient(fields map[string]json.RawMessage) Settings {
	s := Defaults()

	if v, ok := number(fields["font_size"]); ok && int(v) != 0 {
		s.FontSize = int(v)
	}
	if v, ok := number(fields["margin_top"]); ok && v != 0 {
		s.Margins.Top = v
	}
	if v, ok := number(fields["margin_bottom"]); ok && v != 0 {
		s.Margins.Bottom = v
	}
	if v, ok := number(fields["margin_left"]); ok && v != 0 {
		s.Margins.Left = v
	}
	if v, ok := number(fields["margin_right"]); ok && v != 0 {
		s.Margins.Right = v
	}
	if v, ok := boolean(fields["one_line_education"]); ok {
		s.OneLineEducation = v
	}

	return s
}

// Present reports whether any layout field appears in the body.
func Present(fields map[string]json.RawMessage) bool {
	for _, key := range []string{"font_size", "margin_top", "margin_bottom", "margin_left", "margin_right", "one_line_education"} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func boolean(raw json.RawMessage) (bool, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0, true
	}
	return false, false
}
