package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func TestMenuNavigation(t *testing.T) {
	modes := registry.List()
	require.GreaterOrEqual(t, len(modes), 2)

	var m tea.Model = NewMenuModel(nil, 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(MenuModel)
	assert.Equal(t, modes[1].ID, menu.Selected())
	assert.False(t, menu.IsQuitting())
}

func TestMenuCursorStaysInRange(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, 80, 24)
	for i := 0; i < 20; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(registry.List())-1, m.(MenuModel).cursor)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.(MenuModel).WantsScoreboard())

	m, cmd := m.Update(runeKey("q"))
	assert.True(t, m.(MenuModel).IsQuitting())
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	modes := registry.List()
	_, err := store.SaveResult(storage.GameRecord{Mode: modes[0].ID, Score: 4321, Outcome: "topout"})
	require.NoError(t, err)

	view := NewMenuModel(store, 100, 30).View()
	assert.Contains(t, view, modes[0].Title)
	assert.Contains(t, view, "best 4321")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   ab", centerText("ab", 8))
	assert.Equal(t, "abcdef", centerText("abcdef", 4))
}
