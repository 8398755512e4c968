package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/board"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth  = 2  // terminal columns per board cell
	panelWidth = 16 // side panel including the gap to the board
)

var (
	blockRunes = [cellWidth]rune{'█', '█'}
	emptyRunes = [cellWidth]rune{' ', '·'}
	flashRunes = [cellWidth]rune{'▓', '▓'}
)

// MinScreenSize returns the smallest screen that fits a board of the given size.
func MinScreenSize(columns, rows int) (w, h int) {
	return columns*cellWidth + 2 + panelWidth, rows + 2
}

// Render draws the snapshot into dst: the framed board on the left and
// the next piece, counters and status on the right.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	g := snap.Board
	minW, minH := MinScreenSize(g.Columns(), g.Rows())
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minW, minH))
		return
	}

	frame := core.NewRect((dst.Width()-minW)/2, (dst.Height()-minH)/2, g.Columns()*cellWidth+2, minH)
	dst.DrawBox(frame, core.ColorGray)

	blinking := make(map[int]bool, len(snap.Blinking))
	for _, row := range snap.Blinking {
		blinking[row] = true
	}

	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Columns(); x++ {
			c := g.At(x, y)
			switch {
			case blinking[y] && snap.BlinkOn:
				drawCell(dst, frame, g.Rows(), x, y, flashRunes, core.ColorBrightWhite)
			case blinking[y]:
				drawCell(dst, frame, g.Rows(), x, y, emptyRunes, core.ColorGray)
			case c.Occupied:
				drawCell(dst, frame, g.Rows(), x, y, blockRunes, c.Color)
			default:
				drawCell(dst, frame, g.Rows(), x, y, emptyRunes, core.ColorGray)
			}
		}
	}
	for _, p := range snap.Current.Cells() {
		drawCell(dst, frame, g.Rows(), p.X, p.Y, blockRunes, snap.Current.Color())
	}

	renderPanel(dst, frame.Right()+2, frame.Y, snap)
	renderOverlay(dst, frame, snap)
}

// drawCell maps board coordinates (row 0 at the bottom) onto the framed screen area.
func drawCell(dst *core.Screen, frame core.Rect, rows, x, y int, runes [cellWidth]rune, color core.Color) {
	sx := frame.X + 1 + x*cellWidth
	sy := frame.Y + 1 + (rows - 1 - y)
	for i, r := range runes {
		dst.SetCell(sx+i, sy, r, color)
	}
}

func renderPanel(dst *core.Screen, x, y int, snap Snapshot) {
	dst.DrawTextColor(x, y, "NEXT", core.ColorBrightWhite)
	renderPreview(dst, x, y+1, snap.Next)

	dst.DrawTextColor(x, y+5, "SCORE", core.ColorBrightWhite)
	dst.DrawText(x, y+6, fmt.Sprintf("%d", snap.Score))
	dst.DrawTextColor(x, y+8, "LEVEL", core.ColorBrightWhite)
	dst.DrawText(x, y+9, fmt.Sprintf("%d", snap.Level))
	dst.DrawTextColor(x, y+11, "LINES", core.ColorBrightWhite)
	dst.DrawText(x, y+12, fmt.Sprintf("%d", snap.Lines))

	if snap.Mode != "" {
		dst.DrawTextColor(x, y+14, snap.Mode, core.ColorGray)
	}
}

// renderPreview draws the piece normalized to the top-left of a 4x2 cell area.
func renderPreview(dst *core.Screen, x, y int, p board.Piece) {
	cells := p.Cells()
	if len(cells) == 0 {
		return
	}
	g := p.Grid()
	minX, maxY := g.MinX(), g.MaxY()
	for _, c := range cells {
		sx := x + (c.X-minX)*cellWidth
		sy := y + (maxY - c.Y)
		for i, r := range blockRunes {
			dst.SetCell(sx+i, sy, r, p.Color())
		}
	}
}

func renderOverlay(dst *core.Screen, frame core.Rect, snap Snapshot) {
	var title, hint string
	switch {
	case snap.State == StateIntro:
		title, hint = "T E T R I S", "get ready"
	case snap.State == StateWon:
		title, hint = "You Win!", "R restart  Q quit"
	case snap.State == StateLost:
		title, hint = "Game Over", "R restart  Q quit"
	case snap.Paused:
		title, hint = "Paused", "P to continue"
	default:
		return
	}

	cy := frame.Y + frame.H/2 - 1
	drawCentered(dst, frame, cy, title, core.ColorBrightYellow)
	drawCentered(dst, frame, cy+1, hint, core.ColorWhite)
}

func drawCentered(dst *core.Screen, frame core.Rect, y int, text string, c core.Color) {
	x := frame.X + (frame.W-len([]rune(text)))/2
	dst.DrawTextColor(x, y, text, c)
}
