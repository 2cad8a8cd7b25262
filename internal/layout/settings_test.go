package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, 11, s.FontSize)
	assert.Equal(t, 0.30, s.Margins.Top)
	assert.Equal(t, 0.30, s.Margins.Bottom)
	assert.Equal(t, 0.45, s.Margins.Left)
	assert.Equal(t, 0.45, s.Margins.Right)
	assert.True(t, s.OneLineEducation)
	require.NoError(t, s.Validate())
}

func TestWithFontSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"lower bound", 9, false},
		{"upper bound", 14, false},
		{"below range", 8, true},
		{"above range", 15, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Defaults().WithFontSize(tt.size)
			if tt.wantErr {
				var layoutErr *Error
				require.ErrorAs(t, err, &layoutErr)
				assert.Equal(t, "font_size", layoutErr.Field)
				assert.Equal(t, DefaultFontSize, s.FontSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, s.FontSize)
		})
	}
}

func TestWithMargin(t *testing.T) {
	s, err := Defaults().WithMargin(SideLeft, 0.75)
	require.NoError(t, err)
	assert.Equal(t, 0.75, s.Margins.Left)
	assert.Equal(t, DefaultMarginRight, s.Margins.Right)

	_, err = Defaults().WithMargin(SideTop, 0.05)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "margins.top")

	_, err = Defaults().WithMargin(SideBottom, 1.5)
	assert.Error(t, err)

	_, err = Defaults().WithMargin(Side("middle"), 0.5)
	assert.Error(t, err)
}

func TestValidate_ReportsJSONFieldName(t *testing.T) {
	s := Defaults()
	s.Margins.Right = 2
	err := s.Validate()
	var layoutErr *Error
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, "margins.right", layoutErr.Field)

	s = Defaults()
	s.FontSize = 20
	err = s.Validate()
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, "font_size", layoutErr.Field)
}

func TestContentWidth(t *testing.T) {
	assert.InDelta(t, 7.6, Defaults().ContentWidth(), 1e-9)
}

func TestRenderFontSize(t *testing.T) {
	s := Defaults()
	s.FontSize = 4
	assert.Equal(t, 8, s.RenderFontSize())
	s.FontSize = 30
	assert.Equal(t, 14, s.RenderFontSize())
	s.FontSize = 10
	assert.Equal(t, 10, s.RenderFontSize())
}

func TestPayloadRoundTrip(t *testing.T) {
	s := Defaults()
	s.FontSize = 12
	s.Margins.Top = 0.5
	s.OneLineEducation = false

	p := s.Payload()
	assert.Equal(t, 12, p.FontSize)
	assert.Equal(t, 0.5, p.MarginTop)
	assert.False(t, p.OneLineEducation)
	assert.Equal(t, s, p.Settings())
}

func TestLenient(t *testing.T) {
	parse := func(t *testing.T, body string) map[string]json.RawMessage {
		t.Helper()
		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(body), &fields))
		return fields
	}

	t.Run("empty body uses defaults", func(t *testing.T) {
		assert.Equal(t, Defaults(), Lenient(parse(t, `{}`)))
	})

	t.Run("numbers and strings", func(t *testing.T) {
		s := Lenient(parse(t, `{"font_size": "12", "margin_top": 0.5, "margin_left": "0.6", "one_line_education": "false"}`))
		assert.Equal(t, 12, s.FontSize)
		assert.Equal(t, 0.5, s.Margins.Top)
		assert.Equal(t, 0.6, s.Margins.Left)
		assert.Equal(t, DefaultMarginRight, s.Margins.Right)
		assert.False(t, s.OneLineEducation)
	})

	t.Run("zero and garbage fall back", func(t *testing.T) {
		s := Lenient(parse(t, `{"font_size": 0, "margin_top": "wide", "margin_bottom": null, "one_line_education": null}`))
		assert.Equal(t, Defaults(), s)
	})

	t.Run("fractional font size truncates", func(t *testing.T) {
		s := Lenient(parse(t, `{"font_size": 10.7}`))
		assert.Equal(t, 10, s.FontSize)
	})

	t.Run("present", func(t *testing.T) {
		assert.False(t, Present(parse(t, `{"resume_data": {}}`)))
		assert.True(t, Present(parse(t, `{"margin_right": 0.4}`)))
	})
}
