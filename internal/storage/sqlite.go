// Package storage provides SQLite-based persistence for saved games, best
// scores and leaderboards.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNoSavedGame is returned when no game has been saved for a variant.
	ErrNoSavedGame = errors.New("storage: no saved game")

	// ErrCorruptGame is returned when a saved game is not valid JSON.
	ErrCorruptGame = errors.New("storage: corrupt saved game")
)

const timeLayout = "2006-01-02 15:04:05"

// DefaultLeaderboardSize is the number of leaderboard entries kept per variant.
const DefaultLeaderboardSize = 10

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// LeaderEntry represents a single leaderboard record.
type LeaderEntry struct {
	ID        int64
	VariantID string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Date returns the entry date in display form.
func (e LeaderEntry) Date() string {
	return e.CreatedAt.Format("2006-01-02 15:04")
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saved_games (
			variant_id TEXT PRIMARY KEY,
			record TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS best_scores (
			variant_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS leaders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaders_top ON leaders(variant_id, score DESC);
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

// SaveGame stores the encoded game record for a variant, replacing any previous one.
func (s *Store) SaveGame(variantID string, record []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_games (variant_id, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(variant_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		variantID, string(record), s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the saved game record for a variant.
// Returns ErrNoSavedGame if nothing was saved and ErrCorruptGame if the
// stored record is not valid JSON.
func (s *Store) LoadGame(variantID string) ([]byte, error) {
	var record string
	err := s.db.QueryRow(
		"SELECT record FROM saved_games WHERE variant_id = ?",
		variantID,
	).Scan(&record)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSavedGame
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	if !json.Valid([]byte(record)) {
		return nil, ErrCorruptGame
	}
	return []byte(record), nil
}

// DeleteGame removes the saved game for a variant.
func (s *Store) DeleteGame(variantID string) error {
	_, err := s.db.Exec("DELETE FROM saved_games WHERE variant_id = ?", variantID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete game: %w", err)
	}
	return nil
}

// BestScore returns the best score recorded for a variant.
// Returns 0 if none exists.
func (s *Store) BestScore(variantID string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE variant_id = ?",
		variantID,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// UpdateBest raises the best score to score if it is higher and returns
// the resulting best. The best score never decreases.
func (s *Store) UpdateBest(variantID string, score int) (int, error) {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (variant_id, score) VALUES (?, ?)
		 ON CONFLICT(variant_id) DO UPDATE SET score = MAX(best_scores.score, excluded.score)`,
		variantID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update best score: %w", err)
	}
	return s.BestScore(variantID)
}

// SaveLeader records a leaderboard entry and trims the board to limit entries.
// A blank name is replaced with defaultName. Returns the 1-based rank of the
// new entry, or 0 if it did not make the board.
func (s *Store) SaveLeader(variantID, name string, score, limit int, defaultName string) (int, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.Exec(
		"INSERT INTO leaders (variant_id, name, score, created_at) VALUES (?, ?, ?, ?)",
		variantID, name, score, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save leader: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	// Earlier entries win ties
	_, err = tx.Exec(
		`DELETE FROM leaders
		 WHERE variant_id = ? AND id NOT IN (
			SELECT id FROM leaders WHERE variant_id = ?
			ORDER BY score DESC, id ASC
			LIMIT ?
		 )`,
		variantID, variantID, limit,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim leaders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit leader: %w", err)
	}

	leaders, err := s.Leaders(variantID, limit)
	if err != nil {
		return 0, err
	}
	for i, e := range leaders {
		if e.ID == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Leaders retrieves the top entries for a variant, ordered by score descending.
func (s *Store) Leaders(variantID string, limit int) ([]LeaderEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT id, variant_id, name, score, created_at
		 FROM leaders
		 WHERE variant_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaders: %w", err)
	}
	defer rows.Close()

	var entries []LeaderEntry
	for rows.Next() {
		var e LeaderEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.VariantID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearLeaders deletes all leaderboard entries for a variant.
func (s *Store) ClearLeaders(variantID string) error {
	_, err := s.db.Exec("DELETE FROM leaders WHERE variant_id = ?", variantID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear leaders: %w", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
