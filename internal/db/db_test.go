package db

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_create_drafts", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS drafts")
	assert.Contains(t, migrations[0].Up, "bundle      JSONB NOT NULL")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Name, migrations[i].Name, "migrations should be sorted")
	}
	for _, m := range migrations {
		assert.False(t, strings.HasSuffix(m.Name, ".sql"))
	}
}

func TestDraftJSON(t *testing.T) {
	d := Draft{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Backend roles",
		Bundle:    types.NewBundle(types.SampleResume(), types.DefaultOrder(), layout.Defaults()),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "owner_id")
	assert.Contains(t, string(fields["bundle"]), `"resume_data"`)
	assert.Contains(t, string(fields["bundle"]), `"font_size":11`)
}
