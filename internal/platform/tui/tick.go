// Package tui provides the Bubble Tea front end for the game.
// It runs the session scheduler on its own goroutine, feeds it key presses
// and draws the snapshots it publishes.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// SnapshotMsg carries a frame published by the scheduler.
type SnapshotMsg tetris.Snapshot

// GameOverMsg is sent once when the scheduler returns.
type GameOverMsg struct {
	Result tetris.Result
	Err    error
}

// frameSink is the RenderSink handed to the scheduler. It keeps only the
// latest snapshot, so a slow terminal drops frames instead of stalling the game.
type frameSink struct {
	frames chan tetris.Snapshot
}

func newFrameSink() *frameSink {
	return &frameSink{frames: make(chan tetris.Snapshot, 1)}
}

// Render implements tetris.RenderSink and never blocks.
func (f *frameSink) Render(s tetris.Snapshot) {
	for {
		select {
		case f.frames <- s:
			return
		default:
		}
		select {
		case <-f.frames:
		default:
		}
	}
}

// close is called after the scheduler has returned.
func (f *frameSink) close() {
	close(f.frames)
}

// waitForFrame returns a command delivering the next snapshot.
// It yields nil once the sink is closed and drained.
func waitForFrame(f *frameSink) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-f.frames
		if !ok {
			return nil
		}
		return SnapshotMsg(s)
	}
}

// runScheduler drives the scheduler until the game ends or ctx is cancelled.
func runScheduler(ctx context.Context, sc *tetris.Scheduler, f *frameSink) tea.Cmd {
	return func() tea.Msg {
		res, err := sc.Run(ctx)
		f.close()
		return GameOverMsg{Result: res, Err: err}
	}
}
