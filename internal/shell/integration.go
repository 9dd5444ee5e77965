// Package shell manages the lifecycle of the bookmarks provider inside the
// host search surface.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/desktop"
	"bookmarks-search/internal/index"
	"bookmarks-search/internal/notify"
	"bookmarks-search/internal/provider"
	"bookmarks-search/internal/storage"
	"bookmarks-search/internal/store"
	"bookmarks-search/internal/watch"
)

// ErrNotEnabled is returned by operations that need an enabled integration.
var ErrNotEnabled = errors.New("bookmarks search is not enabled")

// Surface is the host search surface providers register with.
type Surface interface {
	AddProvider(p provider.SearchProvider)
	RemoveProvider(p provider.SearchProvider)
}

// Deps holds the collaborators used to build the index and provider on enable.
type Deps struct {
	Sources  []string
	Watcher  watch.Watcher
	Notifier notify.Notifier
	Journal  storage.Journal
	Launcher desktop.Launcher
	Icons    provider.IconSource
	Logger   *slog.Logger
}

// Status is a point-in-time view of the integration.
type Status struct {
	Enabled bool        `json:"enabled"`
	State   index.State `json:"state"`
	Entries int         `json:"entries"`
	Sources []string    `json:"sources"`
}

// Integration owns at most one index and provider. Both are created by
// Enable and torn down by Disable.
type Integration struct {
	surface Surface
	deps    Deps

	mu       sync.Mutex
	index    *index.Index
	provider *provider.Provider
	started  bool // set by the first Enable
}

// New creates a disabled integration.
func New(surface Surface, deps Deps) *Integration {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Integration{surface: surface, deps: deps}
}

// Enable builds the index, performs the initial load and registers the
// provider. Enabling an enabled integration does nothing.
func (i *Integration) Enable(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index != nil {
		return nil
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "enabling bookmarks search", "sources", i.deps.Sources)

	st := store.New()
	i.index = index.New(ctx, i.deps.Sources, st, index.Options{
		Watcher:  i.deps.Watcher,
		Notifier: i.deps.Notifier,
		Journal:  i.deps.Journal,
		Logger:   i.deps.Logger,
	})
	i.provider = provider.New(st, i.deps.Launcher, i.deps.Icons)
	i.surface.AddProvider(i.provider)
	i.started = true

	logger.InfoContext(ctx, "bookmarks search enabled", "entries", st.Len())
	return nil
}

// Disable unregisters the provider and closes the index. Disabling a
// disabled integration does nothing.
func (i *Integration) Disable() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return nil
	}

	i.surface.RemoveProvider(i.provider)
	err := i.index.Close()
	i.index = nil
	i.provider = nil

	i.deps.Logger.Info("bookmarks search disabled")
	return err
}

// Enabled reports whether the provider is registered.
func (i *Integration) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index != nil
}

// Provider returns the registered provider.
func (i *Integration) Provider() (*provider.Provider, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.provider == nil {
		return nil, ErrNotEnabled
	}
	return i.provider, nil
}

// Refresh reloads all bookmark files now.
func (i *Integration) Refresh(ctx context.Context) (int, error) {
	i.mu.Lock()
	idx := i.index
	i.mu.Unlock()

	if idx == nil {
		return 0, ErrNotEnabled
	}
	return idx.Refresh(ctx)
}

// Status reports the current lifecycle state and index size. The state is
// uninitialized before the first Enable and closed after Disable.
func (i *Integration) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	status := Status{
		State:   index.StateUninitialized,
		Sources: append([]string(nil), i.deps.Sources...),
	}
	switch {
	case i.index != nil:
		status.Enabled = true
		status.State = i.index.State()
		status.Entries = i.index.Store().Len()
	case i.started:
		status.State = index.StateClosed
	}
	return status
}
