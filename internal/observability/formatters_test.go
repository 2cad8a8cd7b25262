package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBundle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	b := types.NewBundle(types.SampleResume(), types.DefaultOrder(), layout.Defaults())
	p.PrintBundle(&b)
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Jordan Avery")
	assert.Contains(t, output, "1. Education (1)")
	assert.Contains(t, output, "2. Technical Skills")
	assert.Contains(t, output, "Font:     11pt")
	assert.Contains(t, output, "0.30 0.30 0.45 0.45")
	assert.Contains(t, output, "Education on one line")
}

func TestPrintBundle_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBundle(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRenderResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRenderResults([]RenderResult{
		{Source: "a.json", Output: "a.pdf", Engine: "native", Pages: 1, Bytes: 2048, Duration: 1500 * time.Microsecond},
		{Source: "b.json", Err: errors.New("bad margins")},
	})
	output := buf.String()

	assert.Contains(t, output, "Rendered 1 of 2")
	assert.Contains(t, output, "✓ a.json -> a.pdf")
	assert.Contains(t, output, "native, 1 page(s), 2048 bytes, 2ms")
	assert.Contains(t, output, "✗ b.json")
	assert.Contains(t, output, "bad margins")
}

func TestPrintRenderResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRenderResults(nil)
	assert.Empty(t, buf.String())
}

func TestPrintValidation_WithErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation([]schemas.FieldError{
		{Field: "education.0", Message: "university is required"},
		{Field: "font_size", Message: "must be between 9 and 14"},
	}, 0)
	output := buf.String()

	assert.Contains(t, output, "VALIDATION ERRORS")
	assert.Contains(t, output, "Found 2 problems")
	assert.Contains(t, output, "⚠ education.0")
	assert.Contains(t, output, "must be between 9 and 14")
}

func TestPrintValidation_Valid(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidation(nil, 1)
	assert.Contains(t, buf.String(), "VALID (1 page(s))")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.Resume{FullName: strings.Repeat("Very Long Name ", 10)}
	b := types.NewBundle(r, nil, layout.Defaults())
	p.PrintBundle(&b)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "verbose logger should enable debug")

	logger, err = NewLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger, err := NewLogger(false)
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
