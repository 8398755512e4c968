package tetris

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle State = iota
	StateIntro
	StateSpawning
	StateFalling
	StateLocking
	StateLineClearing
	StateLost
	StateWon
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIntro:
		return "intro"
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateLocking:
		return "locking"
	case StateLineClearing:
		return "line_clearing"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Running reports whether the session is between start and end.
func (s State) Running() bool {
	switch s {
	case StateIntro, StateSpawning, StateFalling, StateLocking, StateLineClearing:
		return true
	}
	return false
}

// Ended reports whether the session reached a terminal state.
func (s State) Ended() bool {
	return s == StateLost || s == StateWon
}
