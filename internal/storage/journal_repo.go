package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_journal.go -package=mocks bookmarks-search/internal/storage Journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// Journal records how each refresh of the bookmark index went.
// It is diagnostic only; the index is never rebuilt from it.
type Journal interface {
	// RecordSource stores the outcome of loading one bookmark file, replacing the previous one.
	RecordSource(ctx context.Context, rec SourceRecord) error
	// ListSources returns the latest outcome for every recorded file, ordered by path.
	ListSources(ctx context.Context) ([]SourceRecord, error)
	// RecordRefresh appends a completed refresh cycle.
	RecordRefresh(ctx context.Context, rec *RefreshRecord) error
	// LatestRefresh returns the most recent refresh cycle, or ErrNotFound.
	LatestRefresh(ctx context.Context) (*RefreshRecord, error)
}

// JournalRepo provides methods for journal operations.
// It implements the Journal interface.
type JournalRepo struct {
	db *sql.DB
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// RecordSource upserts the source row keyed by path.
func (r *JournalRepo) RecordSource(ctx context.Context, rec SourceRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sources (path, status, entries, hash, last_error, refreshed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (path) DO UPDATE SET
		 status = excluded.status, entries = excluded.entries, hash = excluded.hash,
		 last_error = excluded.last_error, refreshed_at = excluded.refreshed_at`,
		rec.Path, rec.Status, rec.Entries, rec.Hash, rec.LastError, rec.RefreshedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record source: %w", err)
	}
	return nil
}

// ListSources returns all source rows ordered by path.
func (r *JournalRepo) ListSources(ctx context.Context) ([]SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT path, status, entries, hash, last_error, refreshed_at FROM sources ORDER BY path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var records []SourceRecord
	for rows.Next() {
		var rec SourceRecord
		if err := rows.Scan(&rec.Path, &rec.Status, &rec.Entries, &rec.Hash, &rec.LastError, &rec.RefreshedAt); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// RecordRefresh inserts a refresh row and sets rec.ID.
func (r *JournalRepo) RecordRefresh(ctx context.Context, rec *RefreshRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO refreshes (cause, entries, failed_sources, started_at, duration_ms) VALUES (?, ?, ?, ?, ?)",
		rec.Trigger, rec.Entries, rec.FailedSources, rec.StartedAt.UTC(), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get refresh id: %w", err)
	}
	rec.ID = id
	return nil
}

// LatestRefresh returns the newest refresh row.
func (r *JournalRepo) LatestRefresh(ctx context.Context) (*RefreshRecord, error) {
	var rec RefreshRecord
	var durationMs int64

	err := r.db.QueryRowContext(ctx,
		"SELECT id, cause, entries, failed_sources, started_at, duration_ms FROM refreshes ORDER BY id DESC LIMIT 1",
	).Scan(&rec.ID, &rec.Trigger, &rec.Entries, &rec.FailedSources, &rec.StartedAt, &durationMs)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh: %w", err)
	}

	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}
