package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"bookmarks-search/internal/bookmarks"
	"bookmarks-search/internal/notify"
	notify_mocks "bookmarks-search/internal/notify/mocks"
	"bookmarks-search/internal/storage"
	storage_mocks "bookmarks-search/internal/storage/mocks"
	"bookmarks-search/internal/store"
	"bookmarks-search/internal/watch"
	watch_mocks "bookmarks-search/internal/watch/mocks"
)

const oneBookmark = `{"roots":{"bookmark_bar":{"type":"folder","children":[
	{"type":"url","name":"Go","url":"https://go.dev"}]}}}`

const twoBookmarks = `{"roots":{"bookmark_bar":{"type":"folder","children":[
	{"type":"url","name":"Go","url":"https://go.dev"},
	{"type":"url","name":"Chi","url":"https://go-chi.io"}]}}}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNew_LoadsAllSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	writeFile(t, a, oneBookmark)
	writeFile(t, b, twoBookmarks)

	st := store.New()
	idx := New(context.Background(), []string{a, b}, st, Options{})
	defer idx.Close()

	if idx.State() != StateReady {
		t.Errorf("State() = %q, want %q", idx.State(), StateReady)
	}
	entries := st.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Source order is preserved: all of a, then all of b.
	want := []string{"https://go.dev", "https://go.dev", "https://go-chi.io"}
	for i, e := range entries {
		if e.URL != want[i] {
			t.Errorf("entries[%d].URL = %q, want %q", i, e.URL, want[i])
		}
	}
}

func TestNew_FailingSourceIsNotified(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	empty := filepath.Join(dir, "empty")
	broken := filepath.Join(dir, "broken")
	missing := filepath.Join(dir, "missing")
	writeFile(t, good, oneBookmark)
	writeFile(t, empty, "")
	writeFile(t, broken, "{not json")

	ctrl := gomock.NewController(t)
	notifier := notify_mocks.NewMockNotifier(ctrl)
	gomock.InOrder(
		notifier.EXPECT().NotifyError(gomock.Any(), "Error parsing file - Empty data", empty),
		notifier.EXPECT().NotifyError(gomock.Any(), "Error parsing file - "+broken, gomock.Any()),
		notifier.EXPECT().NotifyError(gomock.Any(), "Error reading file", gomock.Any()),
	)

	st := store.New()
	idx := New(context.Background(), []string{good, empty, broken, missing}, st, Options{Notifier: notifier})
	defer idx.Close()

	if st.Len() != 1 {
		t.Errorf("expected 1 entry from the good source, got %d", st.Len())
	}
}

func TestNew_WatchesEverySource(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	writeFile(t, a, oneBookmark)

	ctrl := gomock.NewController(t)
	watcher := watch_mocks.NewMockWatcher(ctrl)
	subA := watch_mocks.NewMockSubscription(ctrl)
	subB := watch_mocks.NewMockSubscription(ctrl)
	watcher.EXPECT().Watch(a, gomock.Any()).Return(subA, nil)
	watcher.EXPECT().Watch(b, gomock.Any()).Return(subB, nil)
	subA.EXPECT().Cancel().Return(nil).Times(1)
	subB.EXPECT().Cancel().Return(nil).Times(1)

	idx := New(context.Background(), []string{a, b}, store.New(), Options{
		Watcher:  watcher,
		Notifier: notify.NewLogNotifier(0),
	})

	if err := idx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Second close must not cancel again.
	if err := idx.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if idx.State() != StateClosed {
		t.Errorf("State() = %q, want %q", idx.State(), StateClosed)
	}
}

func TestNew_WatchFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, oneBookmark)

	ctrl := gomock.NewController(t)
	watcher := watch_mocks.NewMockWatcher(ctrl)
	watcher.EXPECT().Watch(a, gomock.Any()).Return(nil, errors.New("no such directory"))

	st := store.New()
	idx := New(context.Background(), []string{a}, st, Options{Watcher: watcher})

	if st.Len() != 1 {
		t.Errorf("expected initial load despite watch failure, got %d entries", st.Len())
	}
	if err := idx.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestChange_ReplacesStore(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, oneBookmark)

	ctrl := gomock.NewController(t)
	watcher := watch_mocks.NewMockWatcher(ctrl)
	sub := watch_mocks.NewMockSubscription(ctrl)

	var onChange func(string)
	watcher.EXPECT().Watch(a, gomock.Any()).DoAndReturn(func(path string, fn func(string)) (watch.Subscription, error) {
		onChange = fn
		return sub, nil
	})
	sub.EXPECT().Cancel().Return(nil)

	st := store.New()
	idx := New(context.Background(), []string{a}, st, Options{Watcher: watcher})

	writeFile(t, a, twoBookmarks)
	onChange(a)
	if st.Len() != 2 {
		t.Fatalf("expected 2 entries after change, got %d", st.Len())
	}

	// A file that becomes broken contributes nothing until it is fixed.
	writeFile(t, a, "")
	onChange(a)
	if st.Len() != 0 {
		t.Fatalf("expected 0 entries after file emptied, got %d", st.Len())
	}

	if err := idx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Changes after close are ignored.
	writeFile(t, a, twoBookmarks)
	onChange(a)
	if st.Len() != 0 {
		t.Errorf("expected store untouched after close, got %d entries", st.Len())
	}
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, oneBookmark)

	st := store.New()
	idx := New(context.Background(), []string{a}, st, Options{})

	writeFile(t, a, twoBookmarks)
	n, err := idx.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if n != 2 || st.Len() != 2 {
		t.Errorf("Refresh() = %d, store has %d, want 2", n, st.Len())
	}

	idx.Close()
	if _, err := idx.Refresh(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Refresh() after close error = %v, want ErrClosed", err)
	}
}

func TestRefresh_RecordsJournal(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	missing := filepath.Join(dir, "missing")
	writeFile(t, good, twoBookmarks)

	ctrl := gomock.NewController(t)
	journal := storage_mocks.NewMockJournal(ctrl)
	journal.EXPECT().RecordSource(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec storage.SourceRecord) error {
			switch rec.Path {
			case good:
				if rec.Status != storage.StatusOK || rec.Entries != 2 || rec.Hash == "" {
					t.Errorf("unexpected good record: %+v", rec)
				}
			case missing:
				if rec.Status != storage.StatusUnreadable || rec.LastError == "" {
					t.Errorf("unexpected missing record: %+v", rec)
				}
			default:
				t.Errorf("unexpected path %q", rec.Path)
			}
			return nil
		}).Times(2)
	journal.EXPECT().RecordRefresh(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *storage.RefreshRecord) error {
			if rec.Trigger != TriggerStartup || rec.Entries != 2 || rec.FailedSources != 1 {
				t.Errorf("unexpected refresh record: %+v", rec)
			}
			return nil
		})

	idx := New(context.Background(), []string{good, missing}, store.New(), Options{
		Journal:  journal,
		Notifier: notify.NewLogNotifier(0),
	})
	defer idx.Close()
}

func TestRefresh_JournalFailureIsIgnored(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, oneBookmark)

	ctrl := gomock.NewController(t)
	journal := storage_mocks.NewMockJournal(ctrl)
	journal.EXPECT().RecordSource(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()
	journal.EXPECT().RecordRefresh(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()

	st := store.New()
	idx := New(context.Background(), []string{a}, st, Options{Journal: journal})
	defer idx.Close()

	if st.Len() != 1 {
		t.Errorf("expected store loaded despite journal errors, got %d", st.Len())
	}
}

func TestDescribe(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantDetail  string
	}{
		{
			name:        "unreadable",
			err:         &bookmarks.SourceError{Path: "/x", Kind: bookmarks.ErrFileUnreadable, Err: cause},
			wantMessage: "Error reading file",
			wantDetail:  "/x: boom",
		},
		{
			name:        "empty",
			err:         &bookmarks.SourceError{Path: "/x", Kind: bookmarks.ErrEmptyContent},
			wantMessage: "Error parsing file - Empty data",
			wantDetail:  "/x",
		},
		{
			name:        "parse",
			err:         &bookmarks.SourceError{Path: "/x", Kind: bookmarks.ErrParse, Err: cause},
			wantMessage: "Error parsing file - /x",
			wantDetail:  "/x: boom",
		},
		{
			name:        "plain error",
			err:         cause,
			wantMessage: "Error loading bookmarks",
			wantDetail:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, detail := describe(tt.err)
			if msg != tt.wantMessage {
				t.Errorf("describe() message = %q, want %q", msg, tt.wantMessage)
			}
			if detail != tt.wantDetail {
				t.Errorf("describe() detail = %q, want %q", detail, tt.wantDetail)
			}
		})
	}
}

func TestNew_PicksUpProfileCreatedLater(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chromium", "Default")
	path := filepath.Join(dir, "Bookmarks")

	st := store.New()
	idx := New(context.Background(), []string{path}, st, Options{
		Watcher:  watch.NewFSWatcher(10 * time.Millisecond),
		Notifier: notify.NewLogNotifier(0),
	})
	defer idx.Close()

	if st.Len() != 0 {
		t.Fatalf("expected empty store before the profile exists, got %d", st.Len())
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create profile directory: %v", err)
	}
	writeFile(t, path, oneBookmark)

	deadline := time.Now().Add(5 * time.Second)
	for st.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 entry after the profile was created, got %d", st.Len())
	}
}
