package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestPainterPlainProfile(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "score")
	s.DrawTextColor(0, 1, "██", core.ColorGreen)
	s.DrawTextColor(2, 1, "██", core.ColorOrange)
	s.DrawBox(core.NewRect(6, 0, 4, 3), core.ColorGray)

	// a renderer writing to a non-terminal has no color support
	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	assert.Equal(t, s.String(), p.Paint(s))
}

func TestPainterUnknownColorFallsBack(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, 'x', core.Color(200))

	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	assert.True(t, strings.HasPrefix(p.Paint(s), "x"))
}

func TestPaletteCoversColors(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorGray; c++ {
		_, ok := palette[c]
		assert.True(t, ok, "color %d has no palette entry", c)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(2, 1, "Paused")

	assert.Contains(t, RenderScreen(s), "Paused")
}
