package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-baduk/reconfig/lib/config"
	"github.com/go-baduk/reconfig/lib/form"
	"github.com/go-baduk/reconfig/lib/reconcile"
	"github.com/go-baduk/reconfig/lib/sched"
)

func testModel(t *testing.T) (*Model, config.Store) {
	t.Helper()
	store := config.Store{
		"engine": config.Store{"visits": 100, "model": "b18"},
	}
	tree := form.Build(store, form.BuildOptions{})
	session := &reconcile.Session{
		Store:  store,
		Tree:   tree,
		Scheme: reconcile.CategoryScheme{Store: store},
		Policy: reconcile.DefaultPolicy(store),
	}
	return New(session, sched.New()), store
}

func keyRunes(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func key(m *Model, s string) {
	switch s {
	case "enter":
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	default:
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func TestCursorStartsOnField(t *testing.T) {
	m, _ := testModel(t)
	require.NotNil(t, m.currentField())
}

func TestEditFiltersInput(t *testing.T) {
	m, _ := testModel(t)
	for m.currentField().Path != "engine/visits" {
		key(m, "j")
	}
	key(m, "enter") // start editing
	require.True(t, m.editing)

	keyRunes(m, "5x0") // non-digits filtered by the field
	assert.Equal(t, "10050", m.currentField().Text)

	key(m, "enter")
	assert.False(t, m.editing)
}

func TestApplyWritesThroughToStore(t *testing.T) {
	m, store := testModel(t)
	for m.currentField().Path != "engine/visits" {
		key(m, "j")
	}
	key(m, "enter")
	keyRunes(m, "0") // 100 -> 1000
	key(m, "enter")
	key(m, "a")

	assert.Equal(t, 1000, store.Get("engine/visits"))
	assert.False(t, m.failed)
}

func TestViewRendersFields(t *testing.T) {
	m, _ := testModel(t)
	out := m.View()
	assert.Contains(t, out, "engine/visits")
	assert.Contains(t, out, "engine/model")
}
