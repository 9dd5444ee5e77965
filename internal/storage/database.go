package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// The journal is written by one refresh at a time; a small pool is enough.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			entries INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL DEFAULT '',
			last_error TEXT NOT NULL DEFAULT '',
			refreshed_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS refreshes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cause TEXT NOT NULL,
			entries INTEGER NOT NULL,
			failed_sources INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_refreshes_started_at ON refreshes (started_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
