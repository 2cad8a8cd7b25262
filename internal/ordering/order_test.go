package ordering

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	o, err := NewOrder([]string{"Skills", "certification", "education"})
	require.NoError(t, err)
	assert.Equal(t, []types.SectionID{types.SectionSkills, types.SectionCertificates, types.SectionEducation}, o.IDs())

	_, err = NewOrder([]string{"skills", "awards"})
	var unknown *types.UnknownSectionError
	assert.ErrorAs(t, err, &unknown)

	_, err = NewOrder([]string{"skills", "SKILLS"})
	var dup *DuplicateSectionError
	assert.ErrorAs(t, err, &dup)
}

func TestOrder_AddRemove(t *testing.T) {
	o := DefaultOrder()
	assert.Equal(t, []types.SectionID{types.SectionCertificates}, o.Missing())

	require.NoError(t, o.Add("certificates"))
	assert.Equal(t, 5, o.Len())
	assert.Empty(t, o.Missing())

	require.NoError(t, o.Add("certificates"))
	assert.Equal(t, 5, o.Len(), "adding a present section is a no-op")

	require.NoError(t, o.Remove("skills"))
	assert.False(t, o.Contains(types.SectionSkills))
	assert.Equal(t, []types.SectionID{types.SectionSkills}, o.Missing())

	require.NoError(t, o.Remove("skills"))
	assert.Equal(t, 4, o.Len())

	assert.Error(t, o.Add("awards"))
	assert.Error(t, o.Remove("awards"))
}

func TestOrder_Apply(t *testing.T) {
	o := DefaultOrder()
	require.NoError(t, o.Apply(Dropped(0, 3)))
	assert.Equal(t, []types.SectionID{
		types.SectionSkills,
		types.SectionExperience,
		types.SectionProjects,
		types.SectionEducation,
	}, o.IDs())

	assert.Error(t, o.Apply(Dropped(9, 0)))
}

func TestOrder_DragThenApply(t *testing.T) {
	o := DefaultOrder()
	d := o.Drag()
	require.NoError(t, d.Start(2))
	require.NoError(t, d.Hover(0))
	result, err := d.Drop()
	require.NoError(t, err)
	require.NoError(t, o.Apply(result))
	assert.Equal(t, types.SectionExperience, o.IDs()[0])
}

func TestOrder_IDsIsACopy(t *testing.T) {
	o := DefaultOrder()
	ids := o.IDs()
	ids[0] = types.SectionProjects
	assert.Equal(t, types.SectionEducation, o.IDs()[0])
}
