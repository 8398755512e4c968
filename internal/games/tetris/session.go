// Package tetris implements the falling-block game session: piece spawning,
// player intents, gravity, locking, line clearing, scoring and leveling,
// plus the scheduler that drives a session in real time.
//
// A Session is not safe for concurrent use. While a Scheduler is running it
// is the only caller; other goroutines observe the game through snapshots.
package tetris

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/board"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrInvalidConfig is returned by New when the configuration cannot drive a session.
var ErrInvalidConfig = errors.New("tetris: invalid config")

// Session owns the board, the falling piece and the counters of one game.
type Session struct {
	cfg    config.TetrisConfig
	mode   string
	logger *log.Logger
	audio  AudioSink
	onEnd  func(Result)

	rng       *rand.Rand
	fixedGen  board.Generator // set by WithGenerator, survives Reset
	generator board.Generator

	state   State
	grid    board.Grid
	current board.Piece
	next    board.Piece
	score   int
	lines   int
	level   int
	pieces  int // spawned so far

	pending  []int // rows waiting for removal, highest first
	blinks   int
	blinkOn  bool
	quitting bool

	rotateArmed bool
	pauseArmed  bool
	paused      bool

	result Result
}

// Option configures a Session.
type Option func(*Session)

// WithAudio sets the sink for sound events.
func WithAudio(a AudioSink) Option {
	return func(s *Session) {
		if a != nil {
			s.audio = a
		}
	}
}

// WithGenerator replaces the configured randomizer with g.
func WithGenerator(g board.Generator) Option {
	return func(s *Session) {
		s.fixedGen = g
	}
}

// WithSeed seeds the randomizer for reproducible games.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEndHandler registers fn to receive the result once per game.
func WithEndHandler(fn func(Result)) Option {
	return func(s *Session) {
		s.onEnd = fn
	}
}

// WithMode records the rule set name shown in snapshots.
func WithMode(id string) Option {
	return func(s *Session) {
		s.mode = id
	}
}

// New creates an idle session. It fails fast on an invalid configuration.
func New(cfg config.TetrisConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Session{
		cfg:    cfg,
		logger: log.New(io.Discard),
		audio:  nopAudio{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.fixedGen == nil {
		if _, err := board.NewGenerator(cfg.Randomizer, s.rng); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	s.Reset()
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() config.TetrisConfig { return s.cfg }

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Running reports whether the session has started and not ended.
func (s *Session) Running() bool { return s.state.Running() }

// Paused reports whether gravity and moves are suspended.
func (s *Session) Paused() bool { return s.paused }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Result returns the final tally. Reason is EndNone until the session ends.
func (s *Session) Result() Result { return s.result }

// GravityInterval returns the gravity period for the current level.
func (s *Session) GravityInterval() time.Duration {
	return s.cfg.Gravity.Interval(s.level)
}

// Reset returns the session to Idle with an empty board and zeroed counters.
func (s *Session) Reset() {
	cols, rows := s.cfg.Board.Columns, s.cfg.Board.Rows

	s.generator = s.fixedGen
	if s.generator == nil {
		// validated in New
		s.generator, _ = board.NewGenerator(s.cfg.Randomizer, s.rng)
	}

	s.grid = board.NewGrid(cols, rows)
	s.current = board.Piece{}
	s.next = board.Spawn(s.generator.Next(), cols, rows)
	s.score = 0
	s.lines = 0
	s.level = s.cfg.Scoring.StartLevel
	s.pieces = 0
	s.pending = nil
	s.blinks = 0
	s.blinkOn = false
	s.quitting = false
	s.rotateArmed = true
	s.pauseArmed = true
	s.paused = false
	s.result = Result{}
	s.setState(StateIdle)
}

// Start begins a game. It does nothing while a game is running; a finished
// game is reset first. With showIntro the session waits in Intro until
// FinishIntro, otherwise the first piece spawns immediately.
func (s *Session) Start(showIntro bool) {
	if s.Running() {
		return
	}
	if s.state != StateIdle {
		s.Reset()
	}
	s.logger.Debug("session started", "mode", s.mode, "intro", showIntro)

	if showIntro && s.cfg.Timing.IntroDuration > 0 {
		s.setState(StateIntro)
		return
	}
	s.spawn()
}

// FinishIntro ends the intro sequence and spawns the first piece.
func (s *Session) FinishIntro() {
	if s.state != StateIntro {
		return
	}
	s.audio.Play(SoundBootUp)
	s.spawn()
}

// Stop ends a running game as if the player quit. Rows being cleared are
// removed first.
func (s *Session) Stop() {
	switch {
	case !s.Running():
		return
	case s.state == StateLineClearing:
		s.quitting = true
		s.completeClear()
	default:
		s.end(EndQuit)
	}
}

// HandleInput applies the intents held in frame.
// Moves and rotation are ignored outside Falling or while paused; Quit is
// honoured in every running state.
func (s *Session) HandleInput(in core.InputFrame) {
	if !in.Has(core.ActionRotate) {
		s.rotateArmed = true
	}
	if !in.Has(core.ActionPause) {
		s.pauseArmed = true
	}

	if in.Has(core.ActionQuit) {
		s.Stop()
		return
	}
	if s.state != StateFalling {
		return
	}

	if in.Has(core.ActionPause) && s.pauseArmed {
		s.pauseArmed = false
		s.paused = !s.paused
		s.logger.Debug("pause toggled", "paused", s.paused)
	}
	if s.paused {
		return
	}

	switch {
	case in.Has(core.ActionMoveLeft) && !in.Has(core.ActionMoveRight):
		s.shift(-1)
	case in.Has(core.ActionMoveRight) && !in.Has(core.ActionMoveLeft):
		s.shift(1)
	}

	if in.Has(core.ActionRotate) && s.rotateArmed {
		s.rotateArmed = false
		s.rotate()
	}

	if in.Has(core.ActionSoftDrop) {
		s.softDrop()
	}
}

// Tick applies one gravity step: the piece falls one row, or locks when it
// cannot.
func (s *Session) Tick() {
	if s.state != StateFalling || s.paused {
		return
	}
	if moved, ok := s.current.TryTranslate(0, -1); ok && !moved.Collides(s.grid) {
		s.current = moved
		return
	}
	s.lock()
}

// Blink advances the line-clear sequence by one step. After the configured
// number of steps the pending rows are removed.
func (s *Session) Blink() {
	if s.state != StateLineClearing {
		return
	}
	s.blinkOn = !s.blinkOn
	s.blinks++
	if s.blinks >= s.cfg.Timing.BlinkCount {
		s.completeClear()
	}
}

func (s *Session) shift(dx int) {
	s.audio.Play(SoundMove)
	if moved, ok := s.current.TryTranslate(dx, 0); ok && !moved.Collides(s.grid) {
		s.current = moved
	}
}

func (s *Session) rotate() {
	s.audio.Play(SoundRotate)
	if r := s.current.Rotate(); !r.Collides(s.grid) {
		s.current = r
	}
}

func (s *Session) softDrop() {
	if moved, ok := s.current.TryTranslate(0, -1); ok && !moved.Collides(s.grid) {
		s.current = moved
		s.score += s.cfg.Scoring.SoftDropPoints
		return
	}
	s.lock()
}

func (s *Session) spawn() {
	s.setState(StateSpawning)

	s.current = s.next
	s.pieces++
	s.next = board.Spawn(s.generator.Next(), s.cfg.Board.Columns, s.cfg.Board.Rows)

	if s.current.Collides(s.grid) {
		s.end(EndTopOut)
		return
	}
	s.setState(StateFalling)
}

func (s *Session) lock() {
	s.setState(StateLocking)

	s.grid = board.Merge(s.grid, s.current.Grid())
	s.current = board.Piece{}
	s.audio.Play(SoundPlace)

	full := s.grid.FullLines()
	if len(full) == 0 {
		s.spawn()
		return
	}

	s.pending = full
	s.blinks = 0
	s.blinkOn = true
	if len(full) >= 4 {
		s.audio.Play(SoundTetrisClear)
	} else {
		s.audio.Play(SoundLineClear)
	}
	s.setState(StateLineClearing)

	if s.cfg.Timing.BlinkCount == 0 {
		s.completeClear()
	}
}

func (s *Session) completeClear() {
	for _, row := range s.pending {
		s.grid = s.grid.RemoveRow(row)
	}
	n := len(s.pending)
	s.pending = nil
	s.blinks = 0
	s.blinkOn = false

	s.score += s.cfg.Scoring.BonusFor(n, s.level)
	s.lines += n
	s.updateLevel()

	switch {
	case s.state.Ended():
	case s.quitting:
		s.end(EndQuit)
	default:
		s.spawn()
	}
}

func (s *Session) updateLevel() {
	level := s.cfg.Scoring.LevelFor(s.lines)
	if level > s.level {
		s.level = level
		s.audio.Play(SoundLevelUp)
		s.logger.Info("level up", "level", level, "lines", s.lines, "interval", s.GravityInterval())
	}
	if s.level >= s.cfg.WinLevel {
		s.end(EndWon)
	}
}

func (s *Session) end(reason EndReason) {
	if s.state.Ended() {
		return
	}

	s.current = board.Piece{}
	s.paused = false
	if reason == EndWon {
		s.setState(StateWon)
	} else {
		s.setState(StateLost)
	}
	if reason == EndTopOut {
		s.audio.Play(SoundLost)
	}

	s.result = Result{
		Score:  s.score,
		Lines:  s.lines,
		Level:  s.level,
		Reason: reason,
	}
	s.logger.Info("session ended", "mode", s.mode, "reason", reason, "score", s.score, "lines", s.lines, "level", s.level)

	if s.onEnd != nil {
		s.onEnd(s.result)
	}
}

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	s.logger.Debug("state", "from", s.state, "to", next)
	s.state = next
}
