package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/board"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode identifiers.
const (
	ModeClassic  = "classic"
	ModeMarathon = "marathon"
	ModeEndless  = "endless"
)

// DefaultMode is used when no mode is selected.
const DefaultMode = ModeClassic

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Classic",
		Description: "uniform random pieces, win at level 15",
		Apply: func(cfg *config.TetrisConfig) {
			cfg.Randomizer = board.RandomizerUniform
			cfg.WinLevel = 15
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeMarathon,
		Title:       "Marathon",
		Description: "7-bag pieces, level-scaled bonus, win at level 15",
		Apply: func(cfg *config.TetrisConfig) {
			cfg.Randomizer = board.RandomizerBag
			cfg.Scoring.LevelMultiplier = true
			cfg.WinLevel = 15
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeEndless,
		Title:       "Endless",
		Description: "7-bag pieces, play until the stack tops out",
		Apply: func(cfg *config.TetrisConfig) {
			cfg.Randomizer = board.RandomizerBag
			cfg.WinLevel = 99
		},
	})
}

// NewForMode builds a session with the rules of the registered mode applied
// over base.
func NewForMode(mode string, base config.TetrisConfig, opts ...Option) (*Session, error) {
	cfg, err := registry.Configure(mode, base)
	if err != nil {
		return nil, err
	}
	return New(cfg, append([]Option{WithMode(mode)}, opts...)...)
}
