package bookmarks

import (
	"errors"
	"fmt"
)

var (
	// ErrFileUnreadable is returned when a bookmark file is missing or cannot be read.
	ErrFileUnreadable = errors.New("bookmark file unreadable")
	// ErrEmptyContent is returned when a bookmark file was read but holds no data.
	ErrEmptyContent = errors.New("bookmark file is empty")
	// ErrParse is returned when bookmark data is not a well-formed bookmark document.
	ErrParse = errors.New("bookmark data could not be parsed")
)

// SourceError describes why a single bookmark file did not contribute entries.
// It matches both its Kind and the underlying cause with errors.Is.
type SourceError struct {
	Path string
	Kind error // One of ErrFileUnreadable, ErrEmptyContent, ErrParse
	Err  error // Underlying cause, may be nil
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
