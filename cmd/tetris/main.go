// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                  - Pick a mode from the menu and play
//	tetris play [mode]      - Play a mode directly
//	tetris modes            - List available modes
//	tetris scores [mode]    - Show high scores
//	tetris serve            - Start SSH server for remote play
//	tetris config           - Print the effective configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Load a custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagNoIntro    bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Falling-block puzzle in your terminal",
	Long: `Stack the falling pieces, clear full rows, and survive as gravity
speeds up level after level.

Available commands:
  play     - Play a mode directly
  modes    - Show all rule sets
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Running tetris without a command opens the mode menu.

Examples:
  tetris
  tetris play marathon
  tetris play --difficulty hard --seed 42
  tetris serve --ssh :2222
  tetris scores endless`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoIntro, "no-intro", false, "Skip the intro sequence")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "~/.tetris/tetris.log", "Log file for interactive play")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig reads the config file and applies the difficulty preset.
func loadGameConfig() (config.TetrisConfig, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.TetrisConfig{}, err
	}
	return cfg, nil
}

// runtimeConfig collects terminal and command-line settings.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	rc.Intro = !flagNoIntro
	return rc
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// newFileLogger opens the log file for interactive play, where stderr would
// corrupt the alternate screen. The returned close func is never nil.
func newFileLogger() (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logger := log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Prefix:          "tetris",
				Level:           logLevel(),
			})
			return logger, func() { f.Close() }
		}
	}

	fmt.Fprintf(os.Stderr, "Warning: cannot write log file %s, logging disabled\n", path)
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger, func() {}
}

// openStore opens the score database. Failures are logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
