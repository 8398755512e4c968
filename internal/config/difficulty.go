package config

import "time"

// Interval returns the gravity period at the given level:
// Base minus the tier step of every level from 2 up to level, clamped to [Min, Base].
func (g GravityConfig) Interval(level int) time.Duration {
	d := g.Base
	for l := 2; l <= level; l++ {
		d -= g.stepAt(l)
		if d <= g.Min {
			return g.Min
		}
	}
	return clampDuration(d, g.Min, g.Base)
}

// stepAt returns the step of the first tier covering level; the last tier
// applies beyond the table.
func (g GravityConfig) stepAt(level int) time.Duration {
	if len(g.Tiers) == 0 {
		return 0
	}
	for _, t := range g.Tiers {
		if level <= t.UntilLevel {
			return t.Step
		}
	}
	return g.Tiers[len(g.Tiers)-1].Step
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Gravity.Tiers = nil
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gravity.Base = cfg.Gravity.Base * 3 / 2
	case DifficultyHard:
		cfg.Gravity.Base = cfg.Gravity.Base * 7 / 10
		cfg.Scoring.StartLevel = max(cfg.Scoring.StartLevel, 3)
		if cfg.WinLevel <= cfg.Scoring.StartLevel {
			cfg.WinLevel = cfg.Scoring.StartLevel + 1
		}
	}
	if cfg.Gravity.Min > cfg.Gravity.Base {
		cfg.Gravity.Min = cfg.Gravity.Base
	}
}

// clampDuration restricts a duration to [min, max].
func clampDuration(val, min, max time.Duration) time.Duration {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
