package tetris

import "github.com/vovakirdan/tui-tetris/internal/board"

// Snapshot is a read-only view of a session for rendering.
// Grids and pieces are immutable, so a snapshot may cross goroutines.
type Snapshot struct {
	Board    board.Grid  // committed cells
	Current  board.Piece // zero while no piece is falling
	Next     board.Piece // preview, positioned at its spawn location
	Score    int
	Level    int
	Lines    int
	Blinking []int // rows being cleared, highest first
	BlinkOn  bool  // whether blinking rows are drawn this phase
	State    State
	Paused   bool
	Mode     string
}

// Snapshot returns the current game snapshot.
func (s *Session) Snapshot() Snapshot {
	var blinking []int
	if len(s.pending) > 0 {
		blinking = append(blinking, s.pending...)
	}
	return Snapshot{
		Board:    s.grid,
		Current:  s.current,
		Next:     s.next,
		Score:    s.score,
		Level:    s.level,
		Lines:    s.lines,
		Blinking: blinking,
		BlinkOn:  s.blinkOn,
		State:    s.state,
		Paused:   s.paused,
		Mode:     s.mode,
	}
}
