// Package store holds the in-memory bookmark snapshot served to searches.
package store

import (
	"slices"
	"sync/atomic"

	"bookmarks-search/internal/bookmarks"
)

// snapshot is immutable once published.
type snapshot struct {
	entries []bookmarks.Entry
	byID    map[string]bookmarks.Entry
}

// Store holds the flattened entries of all configured bookmark files.
// It is only ever replaced wholesale; readers never observe a partial replace.
type Store struct {
	current atomic.Pointer[snapshot]
}

// New creates an empty store.
func New() *Store {
	s := &Store{}
	s.current.Store(&snapshot{byID: map[string]bookmarks.Entry{}})
	return s
}

// ReplaceAll publishes entries as the new contents of the store.
// The slice is copied, so the caller may reuse it.
func (s *Store) ReplaceAll(entries []bookmarks.Entry) {
	next := &snapshot{
		entries: slices.Clone(entries),
		byID:    make(map[string]bookmarks.Entry, len(entries)),
	}
	for _, e := range next.entries {
		next.byID[e.ID()] = e
	}
	s.current.Store(next)
}

// All returns the current entries in order. The result is a copy and does
// not follow later replaces.
func (s *Store) All() []bookmarks.Entry {
	return slices.Clone(s.current.Load().entries)
}

// Lookup finds an entry of the current snapshot by its ID.
func (s *Store) Lookup(id string) (bookmarks.Entry, bool) {
	e, ok := s.current.Load().byID[id]
	return e, ok
}

// Len returns the number of entries in the current snapshot.
func (s *Store) Len() int {
	return len(s.current.Load().entries)
}
