package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for a mode (default: classic).

Examples:
  tetris scores
  tetris scores marathon --limit 20
  tetris scores --recent
  tetris scores --tui
  tetris scores endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent games of every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := tetris.DefaultMode
	if len(args) == 1 {
		mode = args[0]
	}
	info, err := registry.Get(mode)
	if err != nil {
		return fmt.Errorf("%w, run 'tetris modes' to see available modes", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		rc := runtimeConfig()
		return tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
	case flagScoresClear:
		if err := store.ClearScores(mode); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Scores for %s cleared.\n", info.Title)
		return nil
	case flagScoresRecent:
		return printRecent(store)
	}

	scores, err := store.TopScores(mode, core.Max(flagScoresLimit, 1))
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", mode)
		return nil
	}

	printTable(os.Stdout, scores, false)

	if stats, err := store.Stats(mode); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Lines: %d   Max level: %d   Wins: %d\n",
			stats.BestScore, stats.Games, stats.TotalLines, stats.MaxLevel, stats.Wins)
	}
	return nil
}

func printRecent(store *storage.Store) error {
	games, err := store.RecentGames(core.Max(flagScoresLimit, 1))
	if err != nil {
		return fmt.Errorf("error retrieving games: %w", err)
	}

	fmt.Println("Recent Games")
	fmt.Println()
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}
	printTable(os.Stdout, games, true)
	return nil
}

func printTable(w *os.File, entries []storage.ScoreEntry, withMode bool) {
	if withMode {
		fmt.Fprintf(w, "  %-4s  %-9s  %-8s  %-5s  %-3s  %-7s  %s\n", "Rank", "Mode", "Score", "Lines", "Lvl", "Outcome", "Date")
	} else {
		fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-3s  %-7s  %-10s  %s\n", "Rank", "Score", "Lines", "Lvl", "Outcome", "Player", "Date")
	}

	for i, e := range entries {
		date := e.CreatedAt.Format("2006-01-02 15:04")
		if withMode {
			fmt.Fprintf(w, "  %-4d  %-9s  %-8d  %-5d  %-3d  %-7s  %s\n", i+1, e.Mode, e.Score, e.Lines, e.Level, e.Outcome, date)
			continue
		}
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-3d  %-7s  %-10s  %s\n", i+1, e.Score, e.Lines, e.Level, e.Outcome, player, date)
	}
}
