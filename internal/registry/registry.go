// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the CLI and the
// SSH server to list and select rule sets without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Mode is a named rule set layered over the loaded configuration.
type Mode struct {
	// ID is the unique identifier used on the command line and in score storage.
	ID string

	// Title is the human-readable name shown in menus and tables.
	Title string

	// Description is a one-line summary of the rules.
	Description string

	// Apply adjusts the configuration for this mode. May be nil.
	Apply func(cfg *config.TetrisConfig)
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode without ID")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}

	modes[m.ID] = m
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		result = append(result, ModeInfo{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the mode registered under id.
// Returns an error if the mode ID is not registered.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}

	return m, nil
}

// Configure returns a copy of base with the mode's rules applied.
func Configure(id string, base config.TetrisConfig) (config.TetrisConfig, error) {
	m, err := Get(id)
	if err != nil {
		return base, err
	}
	cfg := base
	if base.Scoring.LineBonus != nil {
		cfg.Scoring.LineBonus = make(map[int]int, len(base.Scoring.LineBonus))
		for k, v := range base.Scoring.LineBonus {
			cfg.Scoring.LineBonus[k] = v
		}
	}
	cfg.Gravity.Tiers = append([]config.GravityTier(nil), base.Gravity.Tiers...)
	if m.Apply != nil {
		m.Apply(&cfg)
	}
	return cfg, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}

// reset clears the registry. Tests only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	modes = make(map[string]Mode)
}
