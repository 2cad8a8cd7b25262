// Package preview renders the live resume preview as HTML and as wrapped terminal text.
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/preview.html.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("preview").Funcs(template.FuncMap{
	"link":  rendering.Link,
	"lines": Lines,
	"join":  func(items []string) string { return strings.Join(items, ", ") },
}).ParseFS(templateFS, "templates/preview.html.tmpl"))

// Contact is one item of the header contact line
type Contact struct {
	Text string
	Href string
}

// Section is a visible section in display order
type Section struct {
	ID    types.SectionID
	Title string
}

type view struct {
	R        types.Resume
	Style    template.CSS
	Contacts []Contact
	Sections []Section
	Print    bool
}

// HTML renders a standalone preview page.
func HTML(b types.Bundle) (string, error) {
	return execute("page", b)
}

// PrintHTML renders the preview page for a headless browser to print. Page
// padding is dropped, so the printer applies the margins.
func PrintHTML(b types.Bundle) (string, error) {
	v := newView(b)
	v.Print = true
	return render("page", v)
}

// Fragment renders only the resume article, for embedding in an existing page.
func Fragment(b types.Bundle) (string, error) {
	return execute("resume", b)
}

func execute(name string, b types.Bundle) (string, error) {
	return render(name, newView(b))
}

func render(name string, v view) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

func newView(b types.Bundle) view {
	settings := b.Layout()
	return view{
		R:        b.Resume,
		Style:    Style(settings),
		Contacts: Contacts(b.Resume),
		Sections: VisibleSections(b.Resume, b.Order()),
	}
}

// Style is the inline CSS that sizes the preview page like the printed one.
func Style(s layout.Settings) template.CSS {
	return template.CSS(fmt.Sprintf(
		"max-width: %.2fin; padding: %.2fin %.2fin %.2fin %.2fin; font-size: %dpt; font-family: 'Times New Roman', serif",
		s.ContentWidth(), s.Margins.Top, s.Margins.Right, s.Margins.Bottom, s.Margins.Left, s.FontSize,
	))
}

// Contacts lists the non-empty header items: phone, email, profile links and location.
func Contacts(r types.Resume) []Contact {
	var out []Contact
	if r.PhoneNumber != "" {
		out = append(out, Contact{Text: r.PhoneNumber})
	}
	if r.Email != "" {
		out = append(out, Contact{Text: r.Email, Href: "mailto:" + r.Email})
	}
	for _, l := range []struct{ label, url string }{
		{"LinkedIn", r.LinkedInURL},
		{"GitHub", r.GithubLink},
		{"LeetCode", r.LeetcodeLink},
	} {
		if href := rendering.Link(l.url); href != "" {
			out = append(out, Contact{Text: l.label, Href: href})
		}
	}
	if r.Location != "" {
		out = append(out, Contact{Text: r.Location})
	}
	return out
}

// VisibleSections resolves the order and keeps only known sections that have entries.
func VisibleSections(r types.Resume, order []types.SectionID) []Section {
	out := make([]Section, 0, len(order))
	for _, raw := range order {
		id, err := types.ParseSectionID(string(raw))
		if err != nil || !r.HasContent(id) {
			continue
		}
		out = append(out, Section{ID: id, Title: id.Title()})
	}
	return out
}

// Lines trims bullets and drops the blank ones.
func Lines(b types.Bullets) []string {
	out := make([]string, 0, len(b))
	for _, line := range b {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
