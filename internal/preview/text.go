package preview

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Terminal widths
const (
	DefaultWidth = 80
	MinWidth     = 30
)

const bulletPrefix = "  • "

// Text renders the resume as plain text wrapped to width columns. Section
// visibility follows the HTML preview.
func Text(b types.Bundle, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(width, MinWidth)

	w := &textWriter{width: width}
	r := b.Resume

	w.center(strings.ToUpper(r.FullName))
	contacts := Contacts(r)
	parts := make([]string, len(contacts))
	for i, c := range contacts {
		parts[i] = c.Text
		if c.Href != "" && !strings.HasPrefix(c.Href, "mailto:") {
			parts[i] = c.Href
		}
	}
	for _, line := range strings.Split(wordwrap.String(strings.Join(parts, " | "), width), "\n") {
		w.center(line)
	}

	if r.Summary != "" {
		w.heading("Summary")
		w.para(r.Summary)
	}

	for _, s := range VisibleSections(r, b.Order()) {
		w.heading(s.Title)
		switch s.ID {
		case types.SectionEducation:
			for _, e := range r.Education {
				w.spread(e.Degree, e.Date)
				w.para(joinNonEmpty(", ", e.University, e.Location))
				if courses := Lines(e.Courses); len(courses) > 0 {
					w.para("Courses: " + strings.Join(courses, ", "))
				}
			}
		case types.SectionSkills:
			for _, sk := range r.Skills {
				w.para(sk.Name + ": " + sk.Value)
			}
		case types.SectionExperience:
			for _, e := range r.Experience {
				w.spread(joinNonEmpty(" | ", e.Title, e.Company), e.Date)
				w.para(e.Location)
				w.bullets(e.Description)
			}
		case types.SectionProjects:
			for _, p := range r.Projects {
				w.spread(joinNonEmpty(" | ", p.Title, p.TechStack), p.Date)
				w.para(p.Link)
				w.bullets(p.Description)
			}
		case types.SectionCertificates:
			for _, c := range r.Certificates {
				w.para(joinNonEmpty(" ", c.Name, rendering.Link(c.Link)))
			}
		}
	}

	return strings.TrimRight(w.buf.String(), "\n") + "\n"
}

type textWriter struct {
	buf   strings.Builder
	width int
}

func (w *textWriter) line(s string) {
	w.buf.WriteString(strings.TrimRight(s, " "))
	w.buf.WriteByte('\n')
}

func (w *textWriter) center(s string) {
	pad := (w.width - ansi.PrintableRuneWidth(s)) / 2
	w.line(strings.Repeat(" ", max(pad, 0)) + s)
}

func (w *textWriter) heading(title string) {
	title = strings.ToUpper(title)
	w.line("")
	w.line(title)
	w.line(strings.Repeat("-", ansi.PrintableRuneWidth(title)))
}

func (w *textWriter) para(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	w.buf.WriteString(wordwrap.String(s, w.width))
	w.buf.WriteByte('\n')
}

// spread puts left and right on one line, right-aligned, or on two lines when they do not fit.
func (w *textWriter) spread(left, right string) {
	lw, rw := ansi.PrintableRuneWidth(left), ansi.PrintableRuneWidth(right)
	if right == "" {
		w.para(left)
		return
	}
	if lw+rw+1 > w.width {
		w.para(left)
		w.line(strings.Repeat(" ", max(w.width-rw, 0)) + right)
		return
	}
	w.line(left + strings.Repeat(" ", w.width-lw-rw) + right)
}

// bullets wraps each bullet with a hanging indent under its marker.
func (w *textWriter) bullets(items types.Bullets) {
	prefixWidth := ansi.PrintableRuneWidth(bulletPrefix)
	for _, item := range Lines(items) {
		wrapped := wordwrap.String(item, w.width-prefixWidth)
		indented := indent.String(wrapped, uint(prefixWidth))
		w.buf.WriteString(bulletPrefix + strings.TrimLeft(indented, " "))
		w.buf.WriteByte('\n')
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
