package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	s := Store{
		"engine": Store{"visits": 100, "model": "b18"},
		"sgf":    Store{"save_feedback": []any{true, false}},
	}
	flat := s.Flatten()
	assert.Equal(t, 100, flat["engine/visits"])
	assert.Equal(t, "b18", flat["engine/model"])
	assert.Equal(t, []any{true, false}, flat["sgf/save_feedback"])
}

func TestExportJSONDeterministic(t *testing.T) {
	s := Store{"engine": Store{"visits": 100}, "debug": Store{"level": 1}}

	a, err := ExportJSON(s)
	require.NoError(t, err)
	b, err := ExportJSON(s)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	assert.Equal(t, int64(100), QueryJSON(a, "engine/visits").Int())
	assert.Equal(t, int64(1), QueryJSON(a, "debug/level").Int())
}
