// Package watch delivers change notifications for individual files.
package watch

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_watcher.go -package=mocks bookmarks-search/internal/watch Watcher,Subscription

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Subscription is a registered watch. Cancel releases it; after Cancel
// returns no new callbacks are started.
type Subscription interface {
	Cancel() error
}

// Watcher registers change callbacks for file paths.
type Watcher interface {
	Watch(path string, onChange func(path string)) (Subscription, error)
}

// FSWatcher watches files with fsnotify.
//
// The parent directory is watched and events are filtered by file name, so
// files replaced by rename (as browsers do when saving bookmarks) keep being
// followed. While the parent directory does not exist, its nearest existing
// ancestor is watched instead and the watch moves down as directories are
// created. Bursts of events within the debounce window produce one callback.
type FSWatcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

// NewFSWatcher creates an FSWatcher. A zero debounce delivers every event.
func NewFSWatcher(debounce time.Duration) *FSWatcher {
	return &FSWatcher{debounce: debounce, logger: slog.Default()}
}

// Watch starts watching path. Neither the file nor its directory needs to exist yet.
func (w *FSWatcher) Watch(path string, onChange func(path string)) (Subscription, error) {
	path = filepath.Clean(path)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	sub := &fsSubscription{
		path:     path,
		dir:      filepath.Dir(path),
		watcher:  fw,
		onChange: onChange,
		debounce: w.debounce,
		logger:   w.logger.With("path", path),
		done:     make(chan struct{}),
	}
	if err := sub.rearm(); err != nil {
		_ = fw.Close()
		return nil, err
	}

	sub.wg.Add(1)
	go sub.loop()
	return sub, nil
}

type fsSubscription struct {
	path     string
	dir      string // parent directory of path
	watcher  *fsnotify.Watcher
	onChange func(path string)
	debounce time.Duration
	logger   *slog.Logger

	// watched is the directory currently registered with the watcher:
	// dir itself, or its nearest existing ancestor. Owned by the loop.
	watched string

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	mu       sync.Mutex
	timer    *time.Timer
	canceled bool
}

// rearm moves the watch to the deepest existing directory on the way to dir.
// It repeats until stable, so a directory created while the watch was being
// moved is not missed.
func (s *fsSubscription) rearm() error {
	for {
		target := nearestExisting(s.dir)
		if target == s.watched {
			return nil
		}
		if err := s.watcher.Add(target); err != nil {
			return fmt.Errorf("failed to watch %s: %w", target, err)
		}
		if s.watched != "" {
			// Fails harmlessly when the old directory was removed.
			_ = s.watcher.Remove(s.watched)
		}
		s.watched = target
		if target != s.dir {
			s.logger.Debug("waiting for bookmark directory", "watching", target)
		}
	}
}

// nearestExisting returns dir or its closest ancestor that is an existing directory.
func nearestExisting(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// within reports whether name is dir or one of its ancestors.
func within(dir, name string) bool {
	return name == dir || strings.HasPrefix(dir, name+string(filepath.Separator))
}

func (s *fsSubscription) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func (s *fsSubscription) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)

	// A directory on the way to dir appeared, or the watched directory went away.
	created := event.Op&(fsnotify.Create|fsnotify.Rename) != 0 && s.watched != s.dir && within(s.dir, name)
	removed := event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && name == s.watched
	if created || removed {
		wasWaiting := s.watched != s.dir
		if err := s.rearm(); err != nil {
			s.logger.Warn("failed to move watch", "error", err)
			return
		}
		// The file may have been written before the watch reached its directory.
		if wasWaiting && s.watched == s.dir {
			if _, err := os.Stat(s.path); err == nil {
				s.schedule()
			}
		}
		return
	}

	if name != s.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	s.logger.Debug("file changed", "op", event.Op.String())
	s.schedule()
}

// schedule fires onChange, after the debounce window if one is set.
func (s *fsSubscription) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}

	if s.debounce <= 0 {
		go s.fire()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

func (s *fsSubscription) fire() {
	s.mu.Lock()
	canceled := s.canceled
	s.mu.Unlock()
	if canceled {
		return
	}
	s.onChange(s.path)
}

// Cancel stops the watch. Calling it more than once is a no-op.
func (s *fsSubscription) Cancel() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.canceled = true
		if s.timer != nil {
			s.timer.Stop()
		}
		s.mu.Unlock()

		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
	})
	return err
}
