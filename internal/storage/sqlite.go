// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is the database location used by the CLI.
const DefaultPath = "~/.tetris/scores.db"

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// GameRecord is the outcome of one finished game.
type GameRecord struct {
	Mode     string
	Player   string // empty for local play
	Score    int
	Lines    int
	Level    int
	Outcome  string // "topout", "won" or "quit"
	Duration time.Duration
}

// ScoreEntry represents a single stored game, as listed in score tables.
type ScoreEntry struct {
	ID        int64
	Mode      string
	Player    string
	Score     int
	Lines     int
	Level     int
	Outcome   string
	Duration  time.Duration
	CreatedAt time.Time
}

// ModeStats summarizes all games of one mode.
type ModeStats struct {
	Games      int
	BestScore  int
	TotalLines int
	MaxLevel   int
	Wins       int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_mode ON games(mode);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(mode, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r GameRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO games (mode, player, score, lines, level, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Player, r.Score, r.Lines, r.Level, r.Outcome, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N games for the given mode.
// Results are ordered by score descending, then by lines descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT id, mode, player, score, lines, level, outcome, duration_ms, created_at
		 FROM games
		 WHERE mode = ?
		 ORDER BY score DESC, lines DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// RecentGames retrieves the most recent games across all modes.
func (s *Store) RecentGames(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.query(
		`SELECT id, mode, player, score, lines, level, outcome, duration_ms, created_at
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) query(q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Player, &e.Score, &e.Lines, &e.Level, &e.Outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no games exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats summarizes every stored game of the given mode.
func (s *Store) Stats(mode string) (ModeStats, error) {
	var st ModeStats
	var best, lines, level, wins sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), SUM(lines), MAX(level),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END)
		 FROM games WHERE mode = ?`,
		mode,
	).Scan(&st.Games, &best, &lines, &level, &wins)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.TotalLines = int(lines.Int64)
	st.MaxLevel = int(level.Int64)
	st.Wins = int(wins.Int64)
	return st, nil
}

// ClearScores deletes all games for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
