// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintBundle outputs a summary of the resume, its section order and layout.
func (p *Printer) PrintBundle(b *types.Bundle) {
	if b == nil {
		return
	}

	r := b.Resume
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.FullName))
	if r.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", r.Email))
	}
	sb.WriteString("\n")

	order := b.Order()
	sb.WriteString("Sections:\n")
	count := min(len(order), maxItemsToShow)
	for i := 0; i < count; i++ {
		id := order[i]
		sb.WriteString(fmt.Sprintf("  %d. %s (%d)\n", i+1, id.Title(), r.Len(id)))
	}
	if len(order) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(order)-maxItemsToShow))
	}
	sb.WriteString("\n")

	s := b.Layout()
	sb.WriteString(fmt.Sprintf("Font:     %dpt\n", s.FontSize))
	sb.WriteString(fmt.Sprintf("Margins:  %.2f %.2f %.2f %.2f in (t b l r)\n",
		s.Margins.Top, s.Margins.Bottom, s.Margins.Left, s.Margins.Right))
	if s.OneLineEducation {
		sb.WriteString("Education on one line")
	} else {
		sb.WriteString("Education on two lines")
	}

	p.printBox("RESUME", sb.String())
}

// RenderResult describes one finished render.
type RenderResult struct {
	Source   string
	Output   string
	Engine   string
	Pages    int
	Bytes    int
	Duration time.Duration
	Err      error
}

// PrintRenderResults outputs a table of render outcomes.
func (p *Printer) PrintRenderResults(results []RenderResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	sb.WriteString(fmt.Sprintf("Rendered %d of %d:\n\n", len(results)-failed, len(results)))

	for i, r := range results {
		if r.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %s\n", r.Source))
			sb.WriteString(fmt.Sprintf("  %s\n", r.Err))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s -> %s\n", r.Source, r.Output))
			sb.WriteString(fmt.Sprintf("  %s, %d page(s), %d bytes, %s\n",
				r.Engine, r.Pages, r.Bytes, r.Duration.Round(time.Millisecond)))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RENDER RESULTS", sb.String())
}

// PrintValidation outputs schema errors, or a success box when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(errs []schemas.FieldError, pages int) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		msg := "✅ VALID"
		if pages > 0 {
			msg = fmt.Sprintf("✅ VALID (%d page(s))", pages)
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, msg)
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(errs)))

	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", e.Message))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ERRORS", sb.String())
}
