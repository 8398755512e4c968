package tetris

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/board"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

type recordingAudio struct {
	sounds []Sound
}

func (r *recordingAudio) Play(s Sound) { r.sounds = append(r.sounds, s) }

func (r *recordingAudio) count(s Sound) int {
	n := 0
	for _, got := range r.sounds {
		if got == s {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, cfg config.TetrisConfig, shapes ...board.Shape) (*Session, *recordingAudio) {
	t.Helper()
	audio := &recordingAudio{}
	s, err := New(cfg,
		WithAudio(audio),
		WithSeed(1),
		WithGenerator(board.NewSequenceGenerator(shapes...)),
	)
	require.NoError(t, err)
	return s, audio
}

// fillRows returns g with rows filled except for the given columns.
func fillRows(g board.Grid, rows []int, except ...int) board.Grid {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	var pts []board.Point
	for _, y := range rows {
		for x := 0; x < g.Columns(); x++ {
			if !skip[x] {
				pts = append(pts, board.Point{X: x, Y: y})
			}
		}
	}
	return g.With(core.ColorGray, pts...)
}

// dropToLock ticks gravity until the current piece locks.
func dropToLock(t *testing.T, s *Session) {
	t.Helper()
	pieces := s.pieces
	for i := 0; i <= s.cfg.Board.Rows; i++ {
		s.Tick()
		if s.State() != StateFalling || s.pieces != pieces {
			return
		}
	}
	t.Fatalf("piece did not lock after %d ticks", s.cfg.Board.Rows+1)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.PollInterval = 0

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestStartSpawnsAndShowsNext(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine, board.ShapeSquare)
	require.Equal(t, StateIdle, s.State())

	s.Start(false)

	assert.Equal(t, StateFalling, s.State())
	assert.Equal(t, board.ShapeLine, s.current.Shape())
	assert.Equal(t, board.ShapeSquare, s.Snapshot().Next.Shape())
	assert.Equal(t, 1, s.Level())

	// Start while running is a no-op
	s.Tick()
	before := s.current.Cells()
	s.Start(false)
	assert.Equal(t, before, s.current.Cells())
}

func TestIntroThenBootUp(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeTri)

	s.Start(true)
	require.Equal(t, StateIntro, s.State())
	assert.True(t, s.current.IsZero())

	s.FinishIntro()
	assert.Equal(t, StateFalling, s.State())
	assert.Equal(t, []Sound{SoundBootUp}, audio.sounds)
}

func TestSingleLineClear(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine, board.ShapeSquare)
	s.grid = fillRows(s.grid, []int{0}, 4, 5, 6, 7)
	s.Start(false)

	dropToLock(t, s)

	require.Equal(t, StateLineClearing, s.State())
	assert.Equal(t, []int{0}, s.Snapshot().Blinking)
	assert.Equal(t, []Sound{SoundPlace, SoundLineClear}, audio.sounds)

	// nothing moves while the row blinks
	s.Tick()
	s.HandleInput(core.FrameOf(core.ActionMoveLeft, core.ActionSoftDrop))
	require.Equal(t, StateLineClearing, s.State())

	for i := 0; i < s.cfg.Timing.BlinkCount; i++ {
		s.Blink()
	}

	assert.Equal(t, StateFalling, s.State())
	assert.Equal(t, 40, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 1, s.Level())
	assert.True(t, s.grid.IsEmpty(), "cleared board:\n%s", s.grid)
	assert.Equal(t, board.ShapeSquare, s.current.Shape())
	assert.Empty(t, s.Snapshot().Blinking)
}

func TestLineClearBuiltFromPlayedPieces(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(),
		board.ShapeLine, board.ShapeLine, board.ShapeSquare, board.ShapeTri)
	s.Start(false)

	play := func(shape board.Shape, action core.Action, shifts int) {
		t.Helper()
		require.Equal(t, shape, s.current.Shape())
		for i := 0; i < shifts; i++ {
			s.HandleInput(core.FrameOf(action))
		}
		dropToLock(t, s)
	}

	// columns 0-3, 6-9, then 4-5 close row 0
	play(board.ShapeLine, core.ActionMoveLeft, 4)
	require.Equal(t, StateFalling, s.State())
	play(board.ShapeLine, core.ActionMoveRight, 2)
	require.Equal(t, StateFalling, s.State())
	assert.Empty(t, s.grid.FullLines())
	play(board.ShapeSquare, core.ActionNone, 0)

	require.Equal(t, StateLineClearing, s.State())
	assert.Equal(t, []int{0}, s.Snapshot().Blinking)

	for i := 0; i < s.cfg.Timing.BlinkCount; i++ {
		s.Blink()
	}

	assert.Equal(t, StateFalling, s.State())
	assert.Equal(t, 40, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, board.ShapeTri, s.current.Shape())
	assert.Equal(t, []board.Point{{X: 4, Y: 0}, {X: 5, Y: 0}}, s.grid.Cells(), "square's top half drops to row 0")
	assert.Equal(t, 6, audio.count(SoundMove))
	assert.Equal(t, 3, audio.count(SoundPlace))
	assert.Equal(t, 1, audio.count(SoundLineClear))
}

func TestTetrisClear(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine)
	s.grid = fillRows(s.grid, []int{0, 1, 2, 3}, 0)
	s.Start(false)

	// stand the line up in the gap at column 0
	s.current = s.current.Rotate()
	for i := 0; i < 10; i++ {
		s.HandleInput(core.FrameOf(core.ActionMoveLeft))
	}
	require.Equal(t, 0, s.current.Grid().MinX())

	dropToLock(t, s)

	require.Equal(t, StateLineClearing, s.State())
	assert.Equal(t, []int{3, 2, 1, 0}, s.pending)
	assert.Equal(t, 1, audio.count(SoundTetrisClear))

	for s.State() == StateLineClearing {
		s.Blink()
	}
	assert.Equal(t, 1000, s.Score())
	assert.Equal(t, 4, s.Lines())
	assert.True(t, s.grid.IsEmpty())
}

func TestLevelUpAtExactlyTenLines(t *testing.T) {
	tests := []struct {
		name      string
		before    int
		wantLevel int
		levelUp   int
	}{
		{"nine lines", 8, 1, 0},
		{"tenth line", 9, 2, 1},
		{"eleventh line", 10, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine)
			s.grid = fillRows(s.grid, []int{0}, 4, 5, 6, 7)
			s.lines = tt.before
			s.level = s.cfg.Scoring.LevelFor(tt.before)
			s.Start(false)

			dropToLock(t, s)
			for s.State() == StateLineClearing {
				s.Blink()
			}

			assert.Equal(t, tt.before+1, s.Lines())
			assert.Equal(t, tt.wantLevel, s.Level())
			assert.Equal(t, tt.levelUp, audio.count(SoundLevelUp))
		})
	}
}

func TestLockAndLose(t *testing.T) {
	var results []Result
	s, err := New(config.DefaultTetrisConfig(),
		WithGenerator(board.NewSequenceGenerator(board.ShapeSquare)),
		WithEndHandler(func(r Result) { results = append(results, r) }),
	)
	require.NoError(t, err)
	audio := &recordingAudio{}
	s.audio = audio

	// a block right under the spawn area
	s.grid = s.grid.With(core.ColorGray, board.Point{X: 4, Y: 14})
	s.Start(false)

	s.Tick()

	assert.Equal(t, StateLost, s.State())
	require.Len(t, results, 1)
	assert.Equal(t, EndTopOut, results[0].Reason)
	assert.Equal(t, EndTopOut, s.Result().Reason)
	assert.Equal(t, []Sound{SoundPlace, SoundLost}, audio.sounds)

	// ended sessions ignore input and gravity
	s.Tick()
	s.HandleInput(core.FrameOf(core.ActionQuit))
	assert.Len(t, results, 1)
}

func TestMovesAreCollisionRejected(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeSquare)
	s.Start(false)

	left := core.FrameOf(core.ActionMoveLeft)
	for i := 0; i < 8; i++ {
		s.HandleInput(left)
	}
	assert.Equal(t, 0, s.current.Grid().MinX())
	assert.Equal(t, 8, audio.count(SoundMove), "move sound on every attempt")

	// wall of committed cells to the right
	s.grid = s.grid.With(core.ColorGray, board.Point{X: 2, Y: 15}, board.Point{X: 2, Y: 16})
	s.HandleInput(core.FrameOf(core.ActionMoveRight))
	assert.Equal(t, 0, s.current.Grid().MinX())

	// opposite directions cancel
	s.grid = board.NewGrid(10, 17)
	s.HandleInput(core.FrameOf(core.ActionMoveLeft, core.ActionMoveRight))
	assert.Equal(t, 0, s.current.Grid().MinX())
}

func TestRotateIsEdgeTriggered(t *testing.T) {
	s, audio := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine)
	s.Start(false)
	s.Tick()
	s.Tick()
	horizontal := s.current.Cells()

	rotate := core.FrameOf(core.ActionRotate)
	s.HandleInput(rotate)
	s.HandleInput(rotate)
	s.HandleInput(rotate)

	assert.Equal(t, 1, audio.count(SoundRotate))
	assert.Equal(t, s.current.Grid().MinX(), s.current.Grid().MaxX(), "vertical after one rotation")

	s.HandleInput(core.NewInputFrame())
	s.HandleInput(rotate)
	assert.Equal(t, 2, audio.count(SoundRotate))
	assert.Len(t, s.current.Cells(), len(horizontal))
}

func TestRotateRejectedOnCollision(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine)
	s.Start(false)
	before := s.current.Cells()

	// the rotated line would occupy column 6 below the top row
	s.grid = s.grid.With(core.ColorGray, board.Point{X: 6, Y: 13})
	s.HandleInput(core.FrameOf(core.ActionRotate))

	assert.Equal(t, before, s.current.Cells())
}

func TestSoftDrop(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeSquare)
	s.Start(false)

	drop := core.FrameOf(core.ActionSoftDrop)
	s.HandleInput(drop)
	s.HandleInput(drop)

	assert.Equal(t, 2, s.Score())
	assert.Equal(t, 13, s.current.Grid().MinY())

	for i := 0; i < 13; i++ {
		s.HandleInput(drop)
	}
	assert.Equal(t, 15, s.Score())
	assert.Equal(t, 0, s.current.Grid().MinY())

	// blocked soft drop locks without points
	s.HandleInput(drop)
	assert.Equal(t, 15, s.Score())
	assert.True(t, s.grid.Occupied(4, 0))
	assert.Equal(t, 16, s.current.Grid().MaxY(), "next piece spawned")
}

func TestPauseSuspendsGravity(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeSquare)
	s.Start(false)

	pause := core.FrameOf(core.ActionPause)
	s.HandleInput(pause)
	s.HandleInput(pause) // held key does not toggle again
	require.True(t, s.Paused())

	s.Tick()
	s.HandleInput(core.FrameOf(core.ActionMoveLeft))
	assert.Equal(t, 15, s.current.Grid().MinY())
	assert.Equal(t, 4, s.current.Grid().MinX())
	assert.True(t, s.Snapshot().Paused)

	s.HandleInput(core.NewInputFrame())
	s.HandleInput(pause)
	require.False(t, s.Paused())
	s.Tick()
	assert.Equal(t, 14, s.current.Grid().MinY())
}

func TestQuitDuringLineClearCompletesRows(t *testing.T) {
	var ended Result
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeLine)
	s.onEnd = func(r Result) { ended = r }
	s.grid = fillRows(s.grid, []int{0}, 4, 5, 6, 7)
	s.Start(false)
	dropToLock(t, s)
	require.Equal(t, StateLineClearing, s.State())

	s.HandleInput(core.FrameOf(core.ActionQuit))

	assert.Equal(t, StateLost, s.State())
	assert.Equal(t, Result{Score: 40, Lines: 1, Level: 1, Reason: EndQuit}, ended)
	assert.True(t, s.grid.IsEmpty())
}

func TestWinAtWinLevel(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.WinLevel = 2
	s, audio := newTestSession(t, cfg, board.ShapeLine)
	s.grid = fillRows(s.grid, []int{0}, 4, 5, 6, 7)
	s.lines = 9
	s.Start(false)

	dropToLock(t, s)
	for s.State() == StateLineClearing {
		s.Blink()
	}

	assert.Equal(t, StateWon, s.State())
	assert.Equal(t, EndWon, s.Result().Reason)
	assert.Equal(t, 2, s.Result().Level)
	assert.Equal(t, 1, audio.count(SoundLevelUp))
	assert.Zero(t, audio.count(SoundLost))
}

func TestZeroBlinkCountClearsImmediately(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.BlinkCount = 0
	s, _ := newTestSession(t, cfg, board.ShapeLine)
	s.grid = fillRows(s.grid, []int{0}, 4, 5, 6, 7)
	s.Start(false)

	dropToLock(t, s)

	assert.Equal(t, StateFalling, s.State())
	assert.Equal(t, 1, s.Lines())
}

func TestResetAndRestart(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultTetrisConfig(), board.ShapeSquare)
	s.Start(false)
	s.HandleInput(core.FrameOf(core.ActionSoftDrop))
	s.Stop()
	require.Equal(t, StateLost, s.State())
	require.Equal(t, EndQuit, s.Result().Reason)

	s.Start(false)

	assert.Equal(t, StateFalling, s.State())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Equal(t, EndNone, s.Result().Reason)
	assert.True(t, s.grid.IsEmpty())
}

func TestSeededSessionsAreDeterministic(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Randomizer = board.RandomizerBag

	a, err := New(cfg, WithSeed(99))
	require.NoError(t, err)
	b, err := New(cfg, WithSeed(99))
	require.NoError(t, err)
	a.Start(false)
	b.Start(false)

	frames := []core.InputFrame{
		core.FrameOf(core.ActionMoveLeft),
		core.FrameOf(core.ActionRotate),
		core.FrameOf(core.ActionSoftDrop),
		core.NewInputFrame(),
	}
	for i := 0; i < 400 && a.Running(); i++ {
		f := frames[i%len(frames)]
		a.HandleInput(f)
		b.HandleInput(f)
		a.Tick()
		b.Tick()
		for a.State() == StateLineClearing {
			a.Blink()
			b.Blink()
		}
	}

	assert.Equal(t, a.Snapshot().Board.String(), b.Snapshot().Board.String())
	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.State(), b.State())
}
