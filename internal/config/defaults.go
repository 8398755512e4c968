package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration: a 10x17 board,
// 80ms input polling and fifteen levels to win.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Columns: 10,
			Rows:    17,
		},
		Timing: TimingConfig{
			PollInterval:  80 * time.Millisecond,
			BlinkInterval: 150 * time.Millisecond,
			BlinkCount:    5,
			IntroDuration: 2 * time.Second,
		},
		Gravity: GravityConfig{
			Base: time.Second,
			Min:  120 * time.Millisecond,
			Tiers: []GravityTier{
				{UntilLevel: 4, Step: 150 * time.Millisecond},
				{UntilLevel: 6, Step: 80 * time.Millisecond},
				{UntilLevel: 99, Step: 40 * time.Millisecond},
			},
		},
		Scoring: ScoringConfig{
			LineBonus:      map[int]int{1: 40, 2: 300, 3: 300, 4: 1000},
			SoftDropPoints: 1,
			LinesPerLevel:  10,
			StartLevel:     1,
		},
		WinLevel:   15,
		Randomizer: "uniform",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
