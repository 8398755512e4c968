package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

func TestRegisterAndList(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(Mode{ID: "zen", Title: "Zen"})
	Register(Mode{ID: "blitz", Title: "Blitz", Description: "fast"})

	list := List()
	require.Len(t, list, 2)
	assert.Equal(t, "blitz", list[0].ID)
	assert.Equal(t, "fast", list[0].Description)
	assert.Equal(t, "zen", list[1].ID)

	assert.True(t, Exists("zen"))
	assert.False(t, Exists("sprint"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(Mode{ID: "zen"})
	assert.Panics(t, func() { Register(Mode{ID: "zen"}) })
	assert.Panics(t, func() { Register(Mode{}) })
}

func TestConfigureDoesNotAliasBase(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(Mode{
		ID: "double",
		Apply: func(cfg *config.TetrisConfig) {
			cfg.WinLevel = 30
			cfg.Scoring.LineBonus[1] = 80
			cfg.Gravity.Tiers[0].UntilLevel = 5
		},
	})

	base := config.DefaultTetrisConfig()
	cfg, err := Configure("double", base)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.WinLevel)
	assert.Equal(t, 80, cfg.Scoring.LineBonus[1])
	assert.Equal(t, 15, base.WinLevel)
	assert.Equal(t, 40, base.Scoring.LineBonus[1])
	assert.Equal(t, 4, base.Gravity.Tiers[0].UntilLevel)

	_, err = Configure("missing", base)
	assert.Error(t, err)
}
