package types

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_JSONFieldNames(t *testing.T) {
	input := `{
		"full_name": "Jane Doe",
		"location": "Austin, TX",
		"phone_number": "555-0100",
		"email": "jane@example.com",
		"linkedin_url": "linkedin.com/in/jane",
		"github_link": "github.com/jane",
		"leetcode_link": "",
		"summary": "Engineer",
		"education": [{"university": "UT", "location": "Austin", "degree": "BS", "date": "2020", "courses": ["Algorithms"]}],
		"experience": [{"title": "SWE", "company": "Acme", "location": "Remote", "date": "2021", "description": "Did things\nMore things"}],
		"projects": [{"title": "Tool", "date": "2022", "tech_stack": "Go", "link": "example.com", "description": ["Wrote it"]}],
		"skills": [{"name": "Languages", "value": "Go"}],
		"certificates": [{"name": "CKA", "link": "cncf.io"}]
	}`

	var r Resume
	require.NoError(t, json.Unmarshal([]byte(input), &r))
	assert.Equal(t, "Jane Doe", r.FullName)
	assert.Equal(t, "github.com/jane", r.GithubLink)
	require.Len(t, r.Education, 1)
	assert.Equal(t, Bullets{"Algorithms"}, r.Education[0].Courses)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, Bullets{"Did things", "More things"}, r.Experience[0].Description)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "Go", r.Projects[0].TechStack)
	require.Len(t, r.Certificates, 1)
	assert.Equal(t, "CKA", r.Certificates[0].Name)
}

func TestResume_Clone(t *testing.T) {
	original := SampleResume()
	clone := original.Clone()

	clone.Experience[0].Description[0] = "changed"
	clone.Skills[0].Value = "changed"
	clone.Education = append(clone.Education, Education{Degree: "PhD"})

	assert.NotEqual(t, "changed", original.Experience[0].Description[0])
	assert.NotEqual(t, "changed", original.Skills[0].Value)
	assert.Len(t, original.Education, 1)
}

func TestResume_HasContent(t *testing.T) {
	r := SampleResume()
	assert.True(t, r.HasContent(SectionEducation))
	assert.True(t, r.HasContent(SectionSkills))
	assert.True(t, r.HasContent(SectionExperience))
	assert.False(t, r.HasContent(SectionProjects))
	assert.False(t, r.HasContent(SectionCertificates))
	assert.False(t, r.HasContent(SectionID("awards")))
}

func TestParseSectionID(t *testing.T) {
	tests := []struct {
		input   string
		want    SectionID
		wantErr bool
	}{
		{"education", SectionEducation, false},
		{"  Skills ", SectionSkills, false},
		{"EXPERIENCE", SectionExperience, false},
		{"certification", SectionCertificates, false},
		{"certificates", SectionCertificates, false},
		{"awards", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSectionID(tt.input)
			if tt.wantErr {
				var unknown *UnknownSectionError
				assert.ErrorAs(t, err, &unknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Education", SectionEducation.Title())
	assert.Equal(t, "Technical Skills", SectionSkills.Title())
	assert.Equal(t, "Certification", SectionCertificates.Title())
}

func TestDefaultOrder_IsACopy(t *testing.T) {
	order := DefaultOrder()
	order[0] = SectionProjects
	assert.Equal(t, SectionEducation, DefaultSectionOrder[0])
}

func TestBundle_JSONShape(t *testing.T) {
	b := NewBundle(SampleResume(), []SectionID{SectionSkills, SectionEducation}, layout.Defaults())
	out, err := json.Marshal(b)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &fields))
	for _, key := range []string{"resume_data", "section_order", "font_size", "margin_top", "margin_bottom", "margin_left", "margin_right", "one_line_education"} {
		assert.Contains(t, fields, key)
	}
	assert.JSONEq(t, `["skills","education"]`, string(fields["section_order"]))
	assert.Equal(t, layout.Defaults(), b.Layout())
}

func TestBundle_OrderFallback(t *testing.T) {
	assert.Equal(t, DefaultSectionOrder, Bundle{}.Order())
}
