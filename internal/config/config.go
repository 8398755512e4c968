// Package config provides YAML-based game configuration loading, validation
// and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/board"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Smallest board that fits every shape in every rotation.
const (
	MinColumns = 4
	MinRows    = 4
)

// TetrisConfig contains all configuration for a game session.
type TetrisConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Timing     TimingConfig  `yaml:"timing"`
	Gravity    GravityConfig `yaml:"gravity"`
	Scoring    ScoringConfig `yaml:"scoring"`
	WinLevel   int           `yaml:"win_level"`  // reaching this level wins the game
	Randomizer string        `yaml:"randomizer"` // "uniform" or "bag"
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// TimingConfig defines scheduler cadences.
type TimingConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`  // input sampling period
	BlinkInterval time.Duration `yaml:"blink_interval"` // one blink step of a line clear
	BlinkCount    int           `yaml:"blink_count"`    // blink steps before rows are removed
	IntroDuration time.Duration `yaml:"intro_duration"`
}

// GravityConfig defines the per-level gravity schedule.
type GravityConfig struct {
	Base  time.Duration `yaml:"base"` // interval at level 1
	Min   time.Duration `yaml:"min"`  // floor for every level
	Tiers []GravityTier `yaml:"tiers"`
}

// GravityTier shortens the interval by Step for each level up to UntilLevel.
type GravityTier struct {
	UntilLevel int           `yaml:"until_level"`
	Step       time.Duration `yaml:"step"`
}

// ScoringConfig defines points and leveling.
type ScoringConfig struct {
	LineBonus       map[int]int `yaml:"line_bonus"`       // lines cleared at once -> points
	SoftDropPoints  int         `yaml:"soft_drop_points"` // per row descended by soft drop
	LevelMultiplier bool        `yaml:"level_multiplier"` // multiply line bonus by level
	LinesPerLevel   int         `yaml:"lines_per_level"`
	StartLevel      int         `yaml:"start_level"`
}

// Validate checks that the configuration can drive a session.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Columns < MinColumns:
		return invalid("board.columns must be at least %d, got %d", MinColumns, c.Board.Columns)
	case c.Board.Rows < MinRows:
		return invalid("board.rows must be at least %d, got %d", MinRows, c.Board.Rows)
	case c.Timing.PollInterval <= 0:
		return invalid("timing.poll_interval must be positive, got %s", c.Timing.PollInterval)
	case c.Timing.BlinkInterval <= 0:
		return invalid("timing.blink_interval must be positive, got %s", c.Timing.BlinkInterval)
	case c.Timing.BlinkCount < 0:
		return invalid("timing.blink_count must not be negative, got %d", c.Timing.BlinkCount)
	case c.Timing.IntroDuration < 0:
		return invalid("timing.intro_duration must not be negative, got %s", c.Timing.IntroDuration)
	}

	if err := c.Gravity.validate(); err != nil {
		return err
	}
	if err := c.Scoring.validate(); err != nil {
		return err
	}

	if c.WinLevel <= c.Scoring.StartLevel {
		return invalid("win_level must be above scoring.start_level %d, got %d", c.Scoring.StartLevel, c.WinLevel)
	}
	switch c.Randomizer {
	case "", board.RandomizerUniform, board.RandomizerBag:
	default:
		return invalid("randomizer must be %q or %q, got %q", board.RandomizerUniform, board.RandomizerBag, c.Randomizer)
	}
	return nil
}

func (g GravityConfig) validate() error {
	if g.Base <= 0 {
		return invalid("gravity.base must be positive, got %s", g.Base)
	}
	if g.Min <= 0 || g.Min > g.Base {
		return invalid("gravity.min must be in (0, %s], got %s", g.Base, g.Min)
	}
	last := 1
	for i, t := range g.Tiers {
		if t.Step < 0 {
			return invalid("gravity.tiers[%d].step must not be negative, got %s", i, t.Step)
		}
		if t.UntilLevel <= last {
			return invalid("gravity.tiers[%d].until_level must be above %d, got %d", i, last, t.UntilLevel)
		}
		last = t.UntilLevel
	}
	return nil
}

func (s ScoringConfig) validate() error {
	if len(s.LineBonus) == 0 {
		return invalid("scoring.line_bonus must not be empty")
	}
	for n, pts := range s.LineBonus {
		if n < 1 || pts < 0 {
			return invalid("scoring.line_bonus entry %d: %d is out of range", n, pts)
		}
	}
	switch {
	case s.SoftDropPoints < 0:
		return invalid("scoring.soft_drop_points must not be negative, got %d", s.SoftDropPoints)
	case s.LinesPerLevel <= 0:
		return invalid("scoring.lines_per_level must be positive, got %d", s.LinesPerLevel)
	case s.StartLevel < 1:
		return invalid("scoring.start_level must be at least 1, got %d", s.StartLevel)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// BonusFor returns the points for clearing n lines at once at the given level.
// Clears larger than the biggest table entry earn that entry's bonus.
func (s ScoringConfig) BonusFor(n, level int) int {
	if n <= 0 || len(s.LineBonus) == 0 {
		return 0
	}
	pts, ok := s.LineBonus[n]
	if !ok {
		keys := make([]int, 0, len(s.LineBonus))
		for k := range s.LineBonus {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			if k <= n {
				pts = s.LineBonus[k]
			}
		}
	}
	if s.LevelMultiplier {
		pts *= level
	}
	return pts
}

// LevelFor returns the level reached after clearing the given number of lines.
func (s ScoringConfig) LevelFor(lines int) int {
	per := s.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return max(s.StartLevel, lines/per+1)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value to a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (easy, normal, hard, fixed)", ErrInvalid, s)
	}
}

// IsFixedPreset returns true if the preset disables gravity progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
