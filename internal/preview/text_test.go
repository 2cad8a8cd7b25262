package preview

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestText_WrapsToWidth(t *testing.T) {
	r := types.SampleResume()
	r.Experience[0].Description = types.Bullets{strings.Repeat("scaled the ingest pipeline ", 8)}

	for _, width := range []int{40, 60, 100} {
		out := Text(types.NewBundle(r, nil, layout.Defaults()), width)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), width, "line %q", line)
		}
	}
}

func TestText_Sections(t *testing.T) {
	out := Text(types.NewBundle(types.SampleResume(), nil, layout.Defaults()), 80)

	assert.Contains(t, out, "JORDAN AVERY")
	assert.Contains(t, out, "(555) 246-6142 | jordan.avery@example.com | Sunnyvale, CA")
	assert.Contains(t, out, "SUMMARY\n-------\n")
	assert.Contains(t, out, "TECHNICAL SKILLS\n")
	assert.Contains(t, out, "  • Worked on distributed backend services")
	assert.NotContains(t, out, "PROJECTS")
	assert.Less(t, strings.Index(out, "EDUCATION"), strings.Index(out, "EXPERIENCE"))
}

func TestText_RightAlignsDates(t *testing.T) {
	out := Text(types.NewBundle(types.SampleResume(), nil, layout.Defaults()), 80)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Software Engineer | Acme") {
			assert.True(t, strings.HasSuffix(line, "Jul 2025 -- Present"))
			assert.Equal(t, 80, ansi.PrintableRuneWidth(line))
			return
		}
	}
	t.Fatal("experience line not found")
}

func TestText_DefaultWidth(t *testing.T) {
	assert.Equal(t,
		Text(types.NewBundle(types.SampleResume(), nil, layout.Defaults()), DefaultWidth),
		Text(types.NewBundle(types.SampleResume(), nil, layout.Defaults()), 0))
}
