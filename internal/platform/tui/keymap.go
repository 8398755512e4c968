package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap defines the in-game key bindings.
// It centralizes bindings and doubles as the help.KeyMap for the footer.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Rotate  key.Binding
	Drop    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Music   key.Binding
	Fx      key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w", "k", " "),
			key.WithHelp("↑/space", "rotate"),
		),
		Drop: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "drop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Music: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music"),
		),
		Fx: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "sound"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.Drop, k.Pause, k.Music, k.Fx, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.Drop},
		{k.Pause, k.Music, k.Fx},
		{k.Restart, k.Back, k.Quit},
	}
}

// Action translates a key message to a game action.
// Returns ActionNone for unbound keys and for the menu key.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate
	case key.Matches(msg, k.Drop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Music):
		return core.ActionToggleMusic
	case key.Matches(msg, k.Fx):
		return core.ActionToggleFx
	}
	return core.ActionNone
}

// DefaultHoldWindow keeps a key reported as held between terminal
// auto-repeat events. It must exceed the repeat period and stay below the
// poll interval so a single tap is seen by exactly one poll.
const DefaultHoldWindow = 60 * time.Millisecond

// KeyState turns key presses into the held state the scheduler polls.
// Terminals deliver no key-up events, so a key counts as held until its
// hold window passes without another press. A press is always reported by
// at least one Poll, however late that poll comes.
//
// KeyState is safe for concurrent use: the UI goroutine presses keys while
// the scheduler goroutine polls.
type KeyState struct {
	mu      sync.Mutex
	hold    time.Duration
	now     func() time.Time
	until   map[core.Action]time.Time
	pending map[core.Action]bool
}

// NewKeyState creates an empty key state. A non-positive hold uses DefaultHoldWindow.
func NewKeyState(hold time.Duration) *KeyState {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyState{
		hold:    hold,
		now:     time.Now,
		until:   make(map[core.Action]time.Time),
		pending: make(map[core.Action]bool),
	}
}

// Press records a key press or auto-repeat for the action.
func (k *KeyState) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	k.until[a] = k.now().Add(k.hold)
	k.pending[a] = true
}

// Poll reports the actions held right now. Expired presses are forgotten.
func (k *KeyState) Poll() core.InputFrame {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	frame := core.NewInputFrame()
	for a, until := range k.until {
		if k.pending[a] || now.Before(until) {
			frame.Set(a)
		}
		if !now.Before(until) {
			delete(k.until, a)
		}
		delete(k.pending, a)
	}
	return frame
}

// Release forgets every held key.
func (k *KeyState) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()

	clear(k.until)
	clear(k.pending)
}
