package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/audio/device"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagNoAudio bool
	flagNoMusic bool
	flagVolume  float64
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode directly",
	Long: `Start a game in the given mode (default: classic).

Controls:
  Left/Right, A/D   - Move piece
  Up, W, Space      - Rotate
  Down, S           - Soft drop
  P                 - Pause
  M / F             - Music / sound effects on/off
  R                 - Restart (after the game ends)
  Q/Esc/Ctrl+C      - Quit
  Ctrl+S            - Save a screenshot

Difficulty options:
  easy   - Slower gravity
  normal - Default gravity schedule
  hard   - Faster gravity, start at level 3
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play marathon --difficulty hard
  tetris play endless --seed 7 --no-music
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoAudio, "no-audio", false, "Disable all sound")
	rootCmd.PersistentFlags().BoolVar(&flagNoMusic, "no-music", false, "Start with the music off")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", audio.DefaultOptions().Volume, "Master volume (0-1)")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := tetris.DefaultMode
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'tetris modes' to see available modes", mode)
	}

	opts, cleanup, err := gameOptions()
	if err != nil {
		return err
	}
	defer cleanup()
	opts.Mode = mode

	rc := runtimeConfig()
	m, err := tui.Run(opts, rc.ScreenW, rc.ScreenH)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	if res, ok := m.Result(); ok {
		fmt.Printf("%s: %s with %d points, %d lines, level %d\n", mode, res.Reason, res.Score, res.Lines, res.Level)
	}
	return nil
}

func runMenu(_ *cobra.Command, _ []string) error {
	opts, cleanup, err := gameOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	rc := runtimeConfig()
	if err := tui.RunApp(opts, rc.ScreenW, rc.ScreenH); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// gameOptions wires config, logging, storage and audio for local play.
func gameOptions() (tui.GameOptions, func(), error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return tui.GameOptions{}, nil, err
	}

	logger, closeLog := newFileLogger()
	store := openStore(logger)
	mixer, stopAudio := startAudio(logger)

	user := os.Getenv("USER")
	rc := runtimeConfig()
	opts := tui.GameOptions{
		Config: cfg,
		Seed:   rc.Seed,
		Intro:  rc.Intro,
		Player: user,
		Store:  store,
		Audio:  mixer,
		Logger: logger,
	}

	cleanup := func() {
		stopAudio()
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return opts, cleanup, nil
}

// startAudio opens the speaker. Without a working output device the game
// runs silently.
func startAudio(logger *log.Logger) (tui.Mixer, func()) {
	if flagNoAudio {
		return nil, func() {}
	}

	opts := audio.DefaultOptions()
	opts.Music = !flagNoMusic
	opts.Volume = flagVolume
	opts.Logger = logger
	player := audio.NewPlayer(opts)

	if err := device.Open(player.SampleRate(), 100*time.Millisecond, player); err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
		return nil, func() {}
	}
	logger.Debug("audio started", "rate", player.SampleRate(), "music", opts.Music)

	return player, func() {
		player.Stop()
		device.Close()
	}
}
