package index

import (
	"context"
	"errors"

	"bookmarks-search/internal/bookmarks"
	"bookmarks-search/internal/storage"
)

// reloadLocked reads every source, combines their entries in source order and
// replaces the store in one step. A failing source is reported and left out
// of this cycle; the others still refresh. idx.mu must be held.
func (idx *Index) reloadLocked(ctx context.Context, trigger string) int {
	started := idx.now()

	var combined []bookmarks.Entry
	failed := 0
	for _, path := range idx.sources {
		load, err := bookmarks.ReadSource(path)
		idx.recordSource(ctx, load, err)
		if err != nil {
			failed++
			idx.report(ctx, err)
			continue
		}
		combined = append(combined, load.Entries...)
	}

	idx.store.ReplaceAll(combined)
	idx.state.Store(StateReady)

	idx.logger.InfoContext(ctx, "bookmarks loaded",
		"trigger", trigger, "entries", len(combined), "sources", len(idx.sources), "failed", failed)

	idx.recordRefresh(ctx, &storage.RefreshRecord{
		Trigger:       trigger,
		Entries:       len(combined),
		FailedSources: failed,
		StartedAt:     started,
		Duration:      idx.now().Sub(started),
	})
	return len(combined)
}

// report surfaces a per-file failure to the user.
func (idx *Index) report(ctx context.Context, err error) {
	message, detail := describe(err)
	idx.notifier.NotifyError(ctx, message, detail)
}

// describe turns a source error into a notification message and detail.
func describe(err error) (string, string) {
	var srcErr *bookmarks.SourceError
	if !errors.As(err, &srcErr) {
		return "Error loading bookmarks", err.Error()
	}

	switch {
	case errors.Is(err, bookmarks.ErrFileUnreadable):
		return "Error reading file", srcErr.Error()
	case errors.Is(err, bookmarks.ErrEmptyContent):
		return "Error parsing file - Empty data", srcErr.Path
	default:
		return "Error parsing file - " + srcErr.Path, srcErr.Error()
	}
}

// status maps a load error to the journal status.
func status(err error) string {
	switch {
	case err == nil:
		return storage.StatusOK
	case errors.Is(err, bookmarks.ErrFileUnreadable):
		return storage.StatusUnreadable
	case errors.Is(err, bookmarks.ErrEmptyContent):
		return storage.StatusEmpty
	default:
		return storage.StatusParseError
	}
}

func (idx *Index) recordSource(ctx context.Context, load bookmarks.SourceLoad, loadErr error) {
	if idx.journal == nil {
		return
	}

	rec := storage.SourceRecord{
		Path:        load.Path,
		Status:      status(loadErr),
		Entries:     len(load.Entries),
		Hash:        load.Hash,
		RefreshedAt: idx.now(),
	}
	if loadErr != nil {
		rec.LastError = loadErr.Error()
	}

	if err := idx.journal.RecordSource(ctx, rec); err != nil {
		idx.logger.WarnContext(ctx, "failed to record source in journal", "path", load.Path, "error", err)
	}
}

func (idx *Index) recordRefresh(ctx context.Context, rec *storage.RefreshRecord) {
	if idx.journal == nil {
		return
	}
	if err := idx.journal.RecordRefresh(ctx, rec); err != nil {
		idx.logger.WarnContext(ctx, "failed to record refresh in journal", "error", err)
	}
}
