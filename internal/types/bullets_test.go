// Package types provides type definitions for the resume document edited and rendered by the builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBullets_UnmarshalArray(t *testing.T) {
	var b Bullets
	require.NoError(t, json.Unmarshal([]byte(`["Built a system", "  ", "Shipped it"]`), &b))
	assert.Equal(t, Bullets{"Built a system", "Shipped it"}, b)
}

func TestBullets_UnmarshalString(t *testing.T) {
	var b Bullets
	require.NoError(t, json.Unmarshal([]byte(`"First line\n\n  Second line  \r\nThird"`), &b))
	assert.Equal(t, Bullets{"First line", "Second line", "Third"}, b)
}

func TestBullets_UnmarshalNull(t *testing.T) {
	var b Bullets
	require.NoError(t, json.Unmarshal([]byte(`null`), &b))
	assert.NotNil(t, b)
	assert.Empty(t, b)
}

func TestBullets_UnmarshalInvalid(t *testing.T) {
	var b Bullets
	err := json.Unmarshal([]byte(`{"text": "nope"}`), &b)
	assert.Error(t, err)
}

func TestBullets_MarshalNilAsArray(t *testing.T) {
	exp := Experience{Title: "Engineer"}
	out, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"description":[]`)
}
