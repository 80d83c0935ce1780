package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-baduk/reconfig/lib/config"
)

func TestPullSeedsFields(t *testing.T) {
	store := config.Store{
		"engine": config.Store{"visits": 100, "enable_ownership": true, "model": "b18"},
	}
	visits := &Field{Path: "engine/visits", Type: Int}
	ownership := &Field{Path: "engine/enable_ownership", Type: Bool}
	model := &Field{Path: "engine/model", Type: String}
	tree := NewContainer("root",
		NewFieldNode(visits), NewFieldNode(ownership), NewFieldNode(model))

	Pull(tree, store)

	assert.Equal(t, "100", visits.Text)
	assert.True(t, ownership.Active)
	assert.Equal(t, "b18", model.Text)
}

func TestPullHealsMissingPath(t *testing.T) {
	store := config.Store{}
	f := &Field{Path: "x/y", Type: String}
	Pull(NewContainer("root", NewFieldNode(f)), store)

	assert.Equal(t, "", f.Text)
	x, ok := config.AsStore(store["x"])
	require.True(t, ok)
	assert.Equal(t, "", x["y"])
}

func TestPullChoiceSelectsMatchingRef(t *testing.T) {
	store := config.Store{"game": config.Store{"rules": "chinese"}}
	f := &Field{
		Path: "game/rules",
		Type: Choice,
		Choices: []ChoiceEntry{
			{Label: "Japanese", Ref: "japanese"},
			{Label: "Chinese", Ref: "chinese"},
		},
	}
	Pull(NewContainer("root", NewFieldNode(f)), store)
	assert.Equal(t, "Chinese", f.Text)

	// unknown stored value defaults to the first entry
	store.Set("game/rules", "tromp-taylor")
	Pull(NewContainer("root", NewFieldNode(f)), store)
	assert.Equal(t, "Japanese", f.Text)
}

func TestPullSkipsIndexedPaths(t *testing.T) {
	store := config.Store{}
	f := &Field{Path: "alpha::0", Type: Bool, Active: true}
	Pull(NewContainer("root", NewFieldNode(f)), store)

	assert.True(t, f.Active)
	assert.Empty(t, store)
}

func TestCollectGathersTypedValues(t *testing.T) {
	tree := NewContainer("root",
		NewFieldNode(&Field{Path: "engine/visits", Type: Int, Text: "150"}),
		NewContainer("sub",
			NewFieldNode(&Field{Path: "engine/max_time", Type: Float, Signed: true, Text: "8.0"}),
			NewFieldNode(&Field{Path: "trainer/lock_ai", Type: Bool, Active: true}),
		),
	)
	got, err := Collect(tree)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"engine/visits":   150,
		"engine/max_time": 8.0,
		"trainer/lock_ai": true,
	}, got)
}

func TestCollectFailsFast(t *testing.T) {
	tree := NewContainer("root",
		NewFieldNode(&Field{Path: "a/good", Type: Int, Text: "1"}),
		NewFieldNode(&Field{Path: "a/bad", Type: Int, Text: ""}),
		NewFieldNode(&Field{Path: "a/later", Type: Int, Text: "3"}),
	)
	got, err := Collect(tree)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "a/bad", perr.Path)
	assert.Nil(t, got, "caller must never see a partial map")
}

func TestCollectDuplicatePathLaterWins(t *testing.T) {
	tree := NewContainer("root",
		NewFieldNode(&Field{Path: "a/k", Type: Int, Text: "1"}),
		NewFieldNode(&Field{Path: "a/k", Type: Int, Text: "2"}),
	)
	got, err := Collect(tree)
	require.NoError(t, err)
	assert.Equal(t, 2, got["a/k"])
}
