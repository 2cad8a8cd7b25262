// Package rendering turns a resume bundle into LaTeX source.
package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/resume.tex.tmpl
var defaultTemplate string

// Template actions use << >> so LaTeX braces never need escaping.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// TemplateData is the value the LaTeX template executes against
type TemplateData struct {
	R                types.Resume
	Sections         []types.SectionID
	FontSize         int
	Margins          layout.Margins
	OneLineEducation bool
}

var funcs = template.FuncMap{
	"esc":    EscapeLaTeX,
	"link":   Link,
	"inches": func(v float64) string { return fmt.Sprintf("%.2fin", v) },
	"list": func(items types.Bullets) string {
		escaped := make([]string, len(items))
		for i, item := range items {
			escaped[i] = EscapeLaTeX(item)
		}
		return strings.Join(escaped, ", ")
	},
}

var builtin = template.Must(newTemplate().Parse(defaultTemplate))

func newTemplate() *template.Template {
	return template.New("resume").Delims(leftDelim, rightDelim).Funcs(funcs)
}

// RenderLaTeX renders the bundle with the built-in template.
func RenderLaTeX(b types.Bundle) (string, error) {
	return execute(builtin, b)
}

// RenderLaTeXWithTemplate renders the bundle with a template file on disk.
// The file uses the same << >> delimiters and functions as the built-in one.
func RenderLaTeXWithTemplate(b types.Bundle, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, b)
}

func execute(tmpl *template.Template, b types.Bundle) (string, error) {
	data, err := BuildTemplateData(b)
	if err != nil {
		return "", &RenderError{
			Message: "failed to build template data",
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := newTemplate().Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// BuildTemplateData resolves the section order and clamps the font size.
// Section names are matched case-insensitively and unknown ones are skipped.
func BuildTemplateData(b types.Bundle) (*TemplateData, error) {
	settings := b.Layout()
	if err := checkMargins(settings.Margins); err != nil {
		return nil, err
	}

	sections := make([]types.SectionID, 0, len(b.Order()))
	for _, id := range b.Order() {
		if parsed, err := types.ParseSectionID(string(id)); err == nil {
			sections = append(sections, parsed)
		}
	}

	return &TemplateData{
		R:                b.Resume,
		Sections:         sections,
		FontSize:         settings.RenderFontSize(),
		Margins:          settings.Margins,
		OneLineEducation: settings.OneLineEducation,
	}, nil
}

func checkMargins(m layout.Margins) error {
	for name, v := range map[string]float64{"top": m.Top, "bottom": m.Bottom, "left": m.Left, "right": m.Right} {
		if v < 0 {
			return fmt.Errorf("negative %s margin: %.2f", name, v)
		}
	}
	if m.Left+m.Right >= layout.PageWidth {
		return fmt.Errorf("horizontal margins %.2fin leave no room on the page", m.Left+m.Right)
	}
	return nil
}

// Link adds https:// to links that do not already start with http.
// Empty links stay empty.
func Link(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}
