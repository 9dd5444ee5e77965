// Package index keeps the bookmark store in sync with the bookmark files on disk.
package index

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/notify"
	"bookmarks-search/internal/storage"
	"bookmarks-search/internal/store"
	"bookmarks-search/internal/watch"
)

// ErrClosed is returned when refreshing an index that has been closed.
var ErrClosed = errors.New("index is closed")

// State is the lifecycle state of an Index.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateClosed        State = "closed"
)

// Refresh triggers recorded in the journal.
const (
	TriggerStartup = "startup"
	TriggerChange  = "change"
	TriggerManual  = "manual"
)

// Options holds the collaborators of an Index. Nil fields are allowed:
// no Watcher means no live refresh, no Journal means nothing is recorded,
// no Notifier falls back to logging.
type Options struct {
	Watcher  watch.Watcher
	Notifier notify.Notifier
	Journal  storage.Journal
	Logger   *slog.Logger
}

// Index owns a bookmark store and reloads it whenever a source file changes.
type Index struct {
	sources  []string
	store    *store.Store
	watcher  watch.Watcher
	notifier notify.Notifier
	journal  storage.Journal
	logger   *slog.Logger
	now      func() time.Time

	// mu serializes refresh cycles and guards subs and closed.
	mu     sync.Mutex
	subs   []watch.Subscription
	closed bool

	state atomic.Value // State
}

// New builds an index over sources: it registers a watch for every path and
// performs the initial load. Failures on individual files are reported to
// the notifier and never fail construction.
func New(ctx context.Context, sources []string, st *store.Store, opts Options) *Index {
	idx := &Index{
		sources:  append([]string(nil), sources...),
		store:    st,
		watcher:  opts.Watcher,
		notifier: opts.Notifier,
		journal:  opts.Journal,
		logger:   opts.Logger,
		now:      time.Now,
	}
	if idx.logger == nil {
		idx.logger = slog.Default()
	}
	if idx.notifier == nil {
		idx.notifier = notify.NewLogNotifier(0)
	}
	idx.state.Store(StateUninitialized)

	ctx = contextutil.WithLogger(ctx, idx.logger)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.watcher != nil {
		for _, path := range idx.sources {
			sub, err := idx.watcher.Watch(path, idx.handleChange)
			if err != nil {
				idx.logger.WarnContext(ctx, "failed to watch bookmark file", "path", path, "error", err)
				continue
			}
			idx.subs = append(idx.subs, sub)
		}
	}

	idx.reloadLocked(ctx, TriggerStartup)
	return idx
}

// Sources returns the bookmark files this index reads.
func (idx *Index) Sources() []string {
	return append([]string(nil), idx.sources...)
}

// Store returns the store kept up to date by this index.
func (idx *Index) Store() *store.Store {
	return idx.store
}

// State returns the current lifecycle state.
func (idx *Index) State() State {
	return idx.state.Load().(State)
}

// Refresh reloads every source file now and returns the number of entries loaded.
func (idx *Index) Refresh(ctx context.Context) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return 0, ErrClosed
	}
	return idx.reloadLocked(ctx, TriggerManual), nil
}

// handleChange is the watch callback. Callbacks that arrive after Close are dropped.
func (idx *Index) handleChange(path string) {
	ctx := contextutil.WithLogger(context.Background(), idx.logger)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		idx.logger.DebugContext(ctx, "ignoring change after close", "path", path)
		return
	}
	idx.logger.InfoContext(ctx, "bookmark file changed", "path", path)
	idx.reloadLocked(ctx, TriggerChange)
}

// Close releases all watches. Further change notifications are ignored.
// Closing an already closed index does nothing.
func (idx *Index) Close() error {
	idx.mu.Lock()
	if idx.closed {
		idx.mu.Unlock()
		return nil
	}
	idx.closed = true
	subs := idx.subs
	idx.subs = nil
	idx.state.Store(StateClosed)
	idx.mu.Unlock()

	// Cancel outside the lock: a watcher may be blocked delivering a callback.
	var errs []error
	for _, sub := range subs {
		if err := sub.Cancel(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
