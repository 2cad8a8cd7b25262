// Package layout holds the formatting parameters shared by the preview and PDF renderers.
package layout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Panel and renderer bounds
const (
	DefaultFontSize = 11
	MinFontSize     = 9
	MaxFontSize     = 14

	// The LaTeX renderer accepts a slightly wider font range than the settings panel.
	MinRenderFontSize = 8
	MaxRenderFontSize = 14

	MinMargin  = 0.10
	MaxMargin  = 1.00
	MarginStep = 0.05

	// PageWidth is the US Letter width in inches.
	PageWidth = 8.5
)

// Default margins in inches
const (
	DefaultMarginTop    = 0.30
	DefaultMarginBottom = 0.30
	DefaultMarginLeft   = 0.45
	DefaultMarginRight  = 0.45
)

// Side names a page margin
type Side string

// Margin sides
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Margins are page margins in inches
type Margins struct {
	Top    float64 `json:"top" yaml:"top" validate:"gte=0.1,lte=1"`
	Bottom float64 `json:"bottom" yaml:"bottom" validate:"gte=0.1,lte=1"`
	Left   float64 `json:"left" yaml:"left" validate:"gte=0.1,lte=1"`
	Right  float64 `json:"right" yaml:"right" validate:"gte=0.1,lte=1"`
}

// Settings are the layout parameters edited in the settings panel
type Settings struct {
	FontSize         int     `json:"font_size" yaml:"font_size" validate:"gte=9,lte=14"`
	Margins          Margins `json:"margins" yaml:"margins"`
	OneLineEducation bool    `json:"one_line_education" yaml:"one_line_education"`
}

// Error reports a layout value outside its allowed range
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout error: %s - %s", e.Field, e.Message)
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the settings used for new documents.
func Defaults() Settings {
	return Settings{
		FontSize: DefaultFontSize,
		Margins: Margins{
			Top:    DefaultMarginTop,
			Bottom: DefaultMarginBottom,
			Left:   DefaultMarginLeft,
			Right:  DefaultMarginRight,
		},
		OneLineEducation: true,
	}
}

// Validate checks every field against the settings panel ranges.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &Error{
			Field:   fieldName(ve.Namespace()),
			Message: fmt.Sprintf("must satisfy %s=%s, got %v", ve.Tag(), ve.Param(), ve.Value()),
		}
	}
	return &Error{Field: "settings", Message: err.Error()}
}

// fieldName turns "Settings.margins.top" into "margins.top".
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

// WithFontSize returns a copy with the font size changed, rejecting values outside 9..14.
func (s Settings) WithFontSize(size int) (Settings, error) {
	if size < MinFontSize || size > MaxFontSize {
		return s, &Error{
			Field:   "font_size",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinFontSize, MaxFontSize, size),
		}
	}
	s.FontSize = size
	return s, nil
}

// WithMargin returns a copy with one margin changed, rejecting values outside 0.10..1.00.
func (s Settings) WithMargin(side Side, inches float64) (Settings, error) {
	field := "margins." + string(side)
	if inches < MinMargin || inches > MaxMargin {
		return s, &Error{
			Field:   field,
			Message: fmt.Sprintf("must be between %.2f and %.2f, got %.2f", MinMargin, MaxMargin, inches),
		}
	}

	switch side {
	case SideTop:
		s.Margins.Top = inches
	case SideBottom:
		s.Margins.Bottom = inches
	case SideLeft:
		s.Margins.Left = inches
	case SideRight:
		s.Margins.Right = inches
	default:
		return s, &Error{Field: field, Message: "unknown margin side"}
	}
	return s, nil
}

// ContentWidth is the printable width in inches after horizontal margins.
func (s Settings) ContentWidth() float64 {
	return PageWidth - s.Margins.Left - s.Margins.Right
}

// RenderFontSize clamps the font size to the range the LaTeX renderer supports.
func (s Settings) RenderFontSize() int {
	return min(MaxRenderFontSize, max(MinRenderFontSize, s.FontSize))
}
