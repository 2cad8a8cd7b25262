package exchange

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(problems []schemas.FieldError) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Field
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	data, err := ExportBundle(types.NewBundle(types.SampleResume(), types.DefaultOrder(), layout.Defaults()))
	require.NoError(t, err)

	problems, err := Check(data)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_Problems(t *testing.T) {
	body := `{
		"resume_data": {"full_name": "Jane", "education": "nope"},
		"font_size": 20,
		"section_order": ["skills", "awards"]
	}`

	problems, err := Check([]byte(body))
	require.NoError(t, err)
	got := fields(problems)
	assert.Contains(t, got, "font_size")
	assert.Contains(t, got, "section_order")
	assert.GreaterOrEqual(t, len(problems), 3)
}

func TestCheck_LayoutTypes(t *testing.T) {
	problems, err := Check([]byte(`{"full_name": "Jane", "margin_top": "wide"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"layout"}, fields(problems))
}

func TestCheck_NotObject(t *testing.T) {
	var payloadErr *PayloadError
	_, err := Check([]byte(`"resume"`))
	assert.ErrorAs(t, err, &payloadErr)
}

func TestCheck_DuplicateSections(t *testing.T) {
	body := `{"resume_data": {"full_name": "Jane"}, "section_order": ["skills", "certification", "Skills", "certificates"]}`

	problems, err := Check([]byte(body))
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "section_order", problems[0].Field)
	assert.Contains(t, problems[0].Message, `"skills" appears more than once`)
	assert.Contains(t, problems[1].Message, `"certificates" appears more than once`)

	_, err = Import([]byte(body))
	assert.ErrorIs(t, err, ErrInvalidImport, "anything Check flags is refused on import")
}
