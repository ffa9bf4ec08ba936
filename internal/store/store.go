package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ready guards every operation so that a zero-value or closed-over nil
// store fails fast instead of panicking inside database/sql.
func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrNotInitialized
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	// Migrations are additive only; existing collections are never
	// dropped or rewritten.
	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		role        TEXT NOT NULL DEFAULT 'neutral',
		points      REAL NOT NULL DEFAULT 0,
		color       TEXT NOT NULL DEFAULT '#6C63FF',
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS vitality_bonuses (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		points      REAL NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS activities (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		category_id  TEXT NOT NULL REFERENCES categories(id),
		date         TEXT NOT NULL,
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL,
		duration_min INTEGER NOT NULL DEFAULT 0,
		energy       TEXT NOT NULL DEFAULT 'medium',
		points       REAL NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date);

	CREATE TABLE IF NOT EXISTS vitality_entries (
		id        TEXT PRIMARY KEY,
		date      TEXT NOT NULL,
		bonus_id  TEXT NOT NULL REFERENCES vitality_bonuses(id),
		completed INTEGER NOT NULL DEFAULT 0,
		UNIQUE(date, bonus_id)
	);

	CREATE INDEX IF NOT EXISTS idx_vitality_entries_date ON vitality_entries(date);

	CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		priority        TEXT NOT NULL DEFAULT 'medium',
		scope           TEXT NOT NULL DEFAULT 'inbox',
		due_date        TEXT,
		completed       INTEGER NOT NULL DEFAULT 0,
		time_logged_min INTEGER NOT NULL DEFAULT 0,
		created_date    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_goals (
		id          TEXT PRIMARY KEY,
		date        TEXT NOT NULL,
		category_id TEXT NOT NULL REFERENCES categories(id),
		target_min  INTEGER NOT NULL,
		UNIQUE(date, category_id)
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// validDate reports whether d is a well-formed YYYY-MM-DD string.
// Dates in that form sort lexicographically in chronological order,
// which is what the range queries rely on.
func validDate(d string) bool {
	_, err := time.Parse(dateLayout, d)
	return err == nil
}

func (s *Store) exists(table, id string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DefaultDBPath returns ~/.config/momentum/momentum.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "momentum", "momentum.db"), nil
}
