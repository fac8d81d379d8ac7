package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultRepoDBName = "holdem_broker.db"

// SQLiteRepository is the single-process, file-backed profile store
// (REPO_MODE=local), grounded on the teacher's auth SQLiteManager.
type SQLiteRepository struct {
	db *sql.DB
}

func repoDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("REPO_LOCAL_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "holdem-broker", defaultRepoDBName), nil
}

func NewSQLiteRepositoryFromEnv() (*SQLiteRepository, error) {
	path, err := repoDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteRepository(path)
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		if parent := filepath.Dir(dbPath); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error { return r.db.Close() }

func (r *SQLiteRepository) LoadProfile(ctx context.Context, userID string) (Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Profile
	err := r.db.QueryRowContext(ctx, `
SELECT chips, loan_count, hands_played, display_name
FROM player_profiles
WHERE user_id = ?
`, userID).Scan(&p.Chips, &p.LoanCount, &p.HandsPlayed, &p.DisplayName)
	if err == sql.ErrNoRows {
		p = Profile{Chips: 1000, DisplayName: userID}
		_, err = r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO player_profiles (user_id, chips, loan_count, hands_played, display_name)
VALUES (?, ?, 0, 0, ?)
`, userID, p.Chips, p.DisplayName)
		return p, err
	}
	return p, err
}

func (r *SQLiteRepository) PersistHand(ctx context.Context, playerID string, chipDelta int64, loanDelta int, handsDelta int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
UPDATE player_profiles
SET chips = chips + ?,
    loan_count = loan_count + ?,
    hands_played = hands_played + ?
WHERE user_id = ?
`, chipDelta, loanDelta, handsDelta, playerID)
	return err
}

func (r *SQLiteRepository) FetchRanking(ctx context.Context) ([]RankingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT display_name, chips, hands_played
FROM player_profiles
ORDER BY chips DESC
LIMIT 100
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RankingEntry
	for rows.Next() {
		var e RankingEntry
		if err := rows.Scan(&e.Name, &e.Chips, &e.HandsPlayed); err != nil {
			return nil, err
		}
		if e.HandsPlayed > 0 {
			e.BB100 = float64(e.Chips) / float64(e.HandsPlayed) / 100
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS player_profiles (
    user_id TEXT PRIMARY KEY,
    chips INTEGER NOT NULL DEFAULT 1000,
    loan_count INTEGER NOT NULL DEFAULT 0,
    hands_played INTEGER NOT NULL DEFAULT 0,
    display_name TEXT NOT NULL DEFAULT ''
)`)
	return err
}
