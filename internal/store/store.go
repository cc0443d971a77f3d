package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store is the journal of the current run. It lives in memory and is
// discarded when the process exits.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at dsn and runs migrations.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
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

// NewMemory creates an in-memory store.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
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
	CREATE TABLE IF NOT EXISTS runs (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		work_minutes        INTEGER NOT NULL,
		short_break_minutes INTEGER NOT NULL,
		long_break_minutes  INTEGER NOT NULL,
		sessions            INTEGER NOT NULL,
		confirm_each_stage  INTEGER NOT NULL DEFAULT 0,
		cancel_mode         TEXT NOT NULL DEFAULT 'abort',
		status              TEXT NOT NULL DEFAULT 'running',
		stopped_at_label    TEXT NOT NULL DEFAULT '',
		started_at          TEXT NOT NULL,
		finished_at         TEXT
	);

	CREATE TABLE IF NOT EXISTS stages (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id          INTEGER NOT NULL REFERENCES runs(id),
		position        INTEGER NOT NULL,
		label           TEXT NOT NULL,
		kind            TEXT NOT NULL,
		planned_seconds INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL,
		started_at      TEXT NOT NULL,
		finished_at     TEXT NOT NULL,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_stages_run ON stages(run_id);
	`
	_, err := s.db.Exec(ddl)
	return err
}
