package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS starred_profiles (
	talent_id  INTEGER PRIMARY KEY,
	starred_at TEXT NOT NULL
);`

// StarredStore persists the starred profile ids locally, so the starred-only
// filter works without the platform.
type StarredStore struct {
	db *sql.DB
}

// Open opens (or creates) the starred database in dataDir. An empty dataDir
// falls back to the user cache directory. Pass ":memory:" as dataDir for an
// in-memory database (used by tests).
func Open(dataDir string) (*StarredStore, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if dataDir == "" {
			dataDir = defaultDataDir()
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "talent-scout.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &StarredStore{db: db}, nil
}

func defaultDataDir() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(cache, "talent-scout")
}

func (s *StarredStore) Close() error {
	return s.db.Close()
}

func (s *StarredStore) Star(talentID int) error {
	_, err := s.db.Exec(
		"INSERT INTO starred_profiles (talent_id, starred_at) VALUES (?, ?) ON CONFLICT DO NOTHING",
		talentID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("starring profile %d: %w", talentID, err)
	}
	return nil
}

func (s *StarredStore) Unstar(talentID int) error {
	_, err := s.db.Exec("DELETE FROM starred_profiles WHERE talent_id = ?", talentID)
	if err != nil {
		return fmt.Errorf("unstarring profile %d: %w", talentID, err)
	}
	return nil
}

// Has reports starred membership. It satisfies the matching engine's starred
// set contract, so lookup failures read as "not starred".
func (s *StarredStore) Has(talentID int) bool {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM starred_profiles WHERE talent_id = ?", talentID).Scan(&one)
	return err == nil
}

// IDs returns every starred id in ascending order.
func (s *StarredStore) IDs() ([]int, error) {
	rows, err := s.db.Query("SELECT talent_id FROM starred_profiles ORDER BY talent_id")
	if err != nil {
		return nil, fmt.Errorf("listing starred profiles: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
