package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)

	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  columns: 12\ntiming:\n  poll_interval: 50ms\nwin_level: 20\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Board.Columns)
	assert.Equal(t, 17, cfg.Board.Rows, "unset fields keep their defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.PollInterval)
	assert.Equal(t, 20, cfg.WinLevel)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  columns: 2\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
	}{
		{"narrow board", func(c *TetrisConfig) { c.Board.Columns = 3 }},
		{"short board", func(c *TetrisConfig) { c.Board.Rows = 0 }},
		{"zero poll", func(c *TetrisConfig) { c.Timing.PollInterval = 0 }},
		{"zero blink", func(c *TetrisConfig) { c.Timing.BlinkInterval = 0 }},
		{"negative blink count", func(c *TetrisConfig) { c.Timing.BlinkCount = -1 }},
		{"zero gravity", func(c *TetrisConfig) { c.Gravity.Base = 0 }},
		{"min above base", func(c *TetrisConfig) { c.Gravity.Min = 2 * c.Gravity.Base }},
		{"negative step", func(c *TetrisConfig) { c.Gravity.Tiers[0].Step = -time.Millisecond }},
		{"unordered tiers", func(c *TetrisConfig) { c.Gravity.Tiers[1].UntilLevel = 2 }},
		{"empty bonus table", func(c *TetrisConfig) { c.Scoring.LineBonus = nil }},
		{"zero lines per level", func(c *TetrisConfig) { c.Scoring.LinesPerLevel = 0 }},
		{"start level zero", func(c *TetrisConfig) { c.Scoring.StartLevel = 0 }},
		{"win below start", func(c *TetrisConfig) { c.WinLevel = 1 }},
		{"unknown randomizer", func(c *TetrisConfig) { c.Randomizer = "nes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestBonusFor(t *testing.T) {
	s := DefaultTetrisConfig().Scoring

	tests := []struct {
		lines, level int
		multiplier   bool
		want         int
	}{
		{0, 1, false, 0},
		{1, 1, false, 40},
		{2, 5, false, 300},
		{3, 1, false, 300},
		{4, 1, false, 1000},
		{5, 1, false, 1000},
		{1, 3, true, 120},
		{4, 2, true, 2000},
	}

	for _, tt := range tests {
		s.LevelMultiplier = tt.multiplier
		assert.Equal(t, tt.want, s.BonusFor(tt.lines, tt.level), "lines=%d level=%d multiplier=%v", tt.lines, tt.level, tt.multiplier)
	}
}

func TestLevelFor(t *testing.T) {
	s := DefaultTetrisConfig().Scoring

	assert.Equal(t, 1, s.LevelFor(0))
	assert.Equal(t, 1, s.LevelFor(9))
	assert.Equal(t, 2, s.LevelFor(10))
	assert.Equal(t, 3, s.LevelFor(25))

	s.StartLevel = 3
	assert.Equal(t, 3, s.LevelFor(10))
	assert.Equal(t, 4, s.LevelFor(30))
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "normal", "hard", "fixed"} {
		p, err := ParseDifficulty(s)
		require.NoError(t, err)
		assert.Equal(t, DifficultyPreset(s), p)
	}

	p, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalid)
}
