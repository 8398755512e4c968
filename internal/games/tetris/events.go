package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Sound is a named audio event emitted by the session.
type Sound int

const (
	SoundRotate Sound = iota
	SoundMove
	SoundPlace
	SoundLineClear
	SoundTetrisClear // four lines at once
	SoundLevelUp
	SoundLost
	SoundBootUp
)

// Sounds lists every sound event.
var Sounds = []Sound{
	SoundRotate,
	SoundMove,
	SoundPlace,
	SoundLineClear,
	SoundTetrisClear,
	SoundLevelUp,
	SoundLost,
	SoundBootUp,
}

func (s Sound) String() string {
	switch s {
	case SoundRotate:
		return "rotate"
	case SoundMove:
		return "move"
	case SoundPlace:
		return "place"
	case SoundLineClear:
		return "line"
	case SoundTetrisClear:
		return "tetris"
	case SoundLevelUp:
		return "levelup"
	case SoundLost:
		return "lost"
	case SoundBootUp:
		return "bootup"
	default:
		return "unknown"
	}
}

// AudioSink receives sound events. Play must not block the caller.
type AudioSink interface {
	Play(Sound)
}

// InputSource reports the intents held at the moment of the call.
type InputSource interface {
	Poll() core.InputFrame
}

// RenderSink receives a snapshot after every scheduler wake-up.
type RenderSink interface {
	Render(Snapshot)
}

// EndReason tells why a session ended.
type EndReason int

const (
	EndNone   EndReason = iota // still running or never started
	EndTopOut                  // a new piece collided at spawn
	EndWon                     // the win level was reached
	EndQuit                    // the player quit
)

func (r EndReason) String() string {
	switch r {
	case EndTopOut:
		return "topout"
	case EndWon:
		return "won"
	case EndQuit:
		return "quit"
	default:
		return "none"
	}
}

// Result is the final tally delivered once when a session ends.
type Result struct {
	Score  int
	Lines  int
	Level  int
	Reason EndReason
}

type nopAudio struct{}

func (nopAudio) Play(Sound) {}

type nopRender struct{}

func (nopRender) Render(Snapshot) {}
