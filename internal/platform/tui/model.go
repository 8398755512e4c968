package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Mixer is the audio surface the game screen drives.
// *audio.Player implements it.
type Mixer interface {
	tetris.AudioSink
	ToggleMusic() bool
	ToggleFx() bool
	MusicOn() bool
	FxOn() bool
}

// GameOptions configures a game screen.
type GameOptions struct {
	Mode   string
	Config config.TetrisConfig
	Seed   int64 // 0 picks a time-based seed for every game
	Intro  bool  // show the intro before the first game
	Player string
	Store  *storage.Store // may be nil
	Audio  Mixer          // may be nil
	Logger *log.Logger
	Hold   time.Duration // key hold window, see KeyState

	// Menu enables the back-to-menu key once a game has ended.
	Menu bool
	// Context bounds every game; cancelling it stops the running session.
	Context context.Context
	// Renderer styles the board for the client's terminal. May be nil.
	Renderer *lipgloss.Renderer
}

// frameMsg is a snapshot tagged with the sink that produced it, so frames
// from a previous game are ignored after a restart.
type frameMsg struct {
	snap   tetris.Snapshot
	source *frameSink
}

// Model is the Bubble Tea model for one game screen.
type Model struct {
	opts    GameOptions
	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	painter *Painter

	input   *KeyState
	frames  *frameSink
	sched   *tetris.Scheduler
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time

	snap       tetris.Snapshot
	result     *tetris.Result
	saved      bool // whether the result has been persisted
	quitting   bool
	backToMenu bool
	err        error
}

// NewModel creates a game screen of the given terminal size.
// It fails when the mode is unknown or the configuration is invalid.
func NewModel(opts GameOptions, width, height int) (Model, error) {
	if opts.Mode == "" {
		opts.Mode = tetris.DefaultMode
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	m := Model{
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(width, boardHeight(height)),
		painter: NewPainter(opts.Renderer),
	}
	m.help.Width = width
	if err := m.newGame(opts.Seed, opts.Intro); err != nil {
		return Model{}, err
	}
	return m, nil
}

// boardHeight leaves one line for the help footer.
func boardHeight(h int) int {
	return core.Max(h-1, 1)
}

// newGame prepares a fresh session and scheduler. Nothing runs until start.
func (m *Model) newGame(seed int64, intro bool) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []tetris.Option{
		tetris.WithSeed(seed),
		tetris.WithLogger(m.opts.Logger),
	}
	if m.opts.Audio != nil {
		opts = append(opts, tetris.WithAudio(m.opts.Audio))
	}
	s, err := tetris.NewForMode(m.opts.Mode, m.opts.Config, opts...)
	if err != nil {
		return fmt.Errorf("tui: cannot create game: %w", err)
	}

	m.input = NewKeyState(m.opts.Hold)
	m.frames = newFrameSink()
	m.sched = tetris.NewScheduler(s, m.input, m.frames, tetris.WithIntro(intro))
	m.ctx, m.cancel = context.WithCancel(m.opts.Context)
	m.snap = s.Snapshot()
	m.result = nil
	m.saved = false
	m.started = time.Now()

	m.opts.Logger.Info("game created", "mode", m.opts.Mode, "seed", seed, "player", m.opts.Player)
	return nil
}

func (m Model) start() tea.Cmd {
	return tea.Batch(
		runScheduler(m.ctx, m.sched, m.frames),
		m.nextFrame(),
	)
}

func (m Model) nextFrame() tea.Cmd {
	f := m.frames
	wait := waitForFrame(f)
	return func() tea.Msg {
		msg := wait()
		if s, ok := msg.(SnapshotMsg); ok {
			return frameMsg{snap: tetris.Snapshot(s), source: f}
		}
		return msg
	}
}

// Init starts the first game.
func (m Model) Init() tea.Cmd {
	return m.start()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, boardHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		if msg.source != m.frames {
			return m, nil
		}
		m.snap = msg.snap
		return m, m.nextFrame()

	case GameOverMsg:
		return m.handleGameOver(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.Ended() && m.opts.Menu && key.Matches(msg, m.menuKey()) {
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:

	case core.ActionQuit:
		m.quitting = true
		if m.Ended() {
			m.cancel()
			return m, tea.Quit
		}
		// the session completes a pending clear, then reports its result
		m.input.Press(core.ActionQuit)

	case core.ActionRestart:
		if !m.Ended() {
			return m, nil
		}
		m.cancel()
		if err := m.newGame(m.opts.Seed, false); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.start()

	case core.ActionToggleMusic:
		if m.opts.Audio != nil {
			on := m.opts.Audio.ToggleMusic()
			m.opts.Logger.Debug("music", "on", on)
		}

	case core.ActionToggleFx:
		if m.opts.Audio != nil {
			on := m.opts.Audio.ToggleFx()
			m.opts.Logger.Debug("sound effects", "on", on)
		}

	default:
		if !m.Ended() {
			m.input.Press(action)
		}
	}

	return m, nil
}

func (m Model) menuKey() key.Binding {
	b := m.keys.Back
	b.SetEnabled(true)
	return b
}

func (m Model) handleGameOver(msg GameOverMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	m.result = &res
	if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
		m.opts.Logger.Warn("scheduler stopped", "error", msg.Err)
	}
	m.opts.Logger.Info("game over",
		"mode", m.opts.Mode,
		"reason", res.Reason,
		"score", res.Score,
		"lines", res.Lines,
		"level", res.Level,
	)
	m.saveResult(res)

	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

// saveResult persists the result once per game. Scoreless games are not recorded.
func (m *Model) saveResult(res tetris.Result) {
	if m.saved {
		return
	}
	m.saved = true
	if m.opts.Store == nil || res.Score <= 0 {
		return
	}

	_, err := m.opts.Store.SaveResult(storage.GameRecord{
		Mode:     m.opts.Mode,
		Player:   m.opts.Player,
		Score:    res.Score,
		Lines:    res.Lines,
		Level:    res.Level,
		Outcome:  res.Reason.String(),
		Duration: time.Since(m.started),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	tetris.Render(m.screen, m.snap)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("no home directory for screenshots", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.opts.Mode, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting && m.Ended() {
		return ""
	}

	tetris.Render(m.screen, m.snap)

	keys := m.keys
	keys.Restart.SetEnabled(m.Ended())
	keys.Back.SetEnabled(m.Ended() && m.opts.Menu)

	var b strings.Builder
	b.WriteString(m.painter.Paint(m.screen))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(keys) + m.audioStatus()))
	return b.String()
}

func (m Model) audioStatus() string {
	if m.opts.Audio == nil {
		return ""
	}
	onOff := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("  [music %s, fx %s]", onOff(m.opts.Audio.MusicOn()), onOff(m.opts.Audio.FxOn()))
}

// Ended reports whether the current game has delivered its result.
func (m Model) Ended() bool {
	return m.result != nil
}

// Result returns the last finished game's result.
func (m Model) Result() (tetris.Result, bool) {
	if m.result == nil {
		return tetris.Result{}, false
	}
	return *m.result, true
}

// Snapshot returns the most recent frame.
func (m Model) Snapshot() tetris.Snapshot { return m.snap }

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user asked to return to the mode menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Err returns the error that stopped the screen, if any.
func (m Model) Err() error { return m.err }

// Stop cancels the running game, if any.
func (m Model) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Run plays games on the local terminal until the player quits or goes back
// to the menu. It returns the final model so callers can inspect the outcome.
func Run(opts GameOptions, width, height int) (Model, error) {
	model, err := NewModel(opts, width, height)
	if err != nil {
		return Model{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	model.Stop()
	if err != nil {
		return model, err
	}

	m, ok := final.(Model)
	if !ok {
		return model, nil
	}
	m.Stop()
	return m, m.Err()
}
