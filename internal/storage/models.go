package storage

import "time"

// Source status values recorded after each load of a bookmark file.
const (
	StatusOK         = "ok"
	StatusUnreadable = "unreadable"
	StatusEmpty      = "empty"
	StatusParseError = "parse_error"
)

// SourceRecord is the outcome of the latest load of one bookmark file.
type SourceRecord struct {
	Path        string    `json:"path"`
	Status      string    `json:"status"`
	Entries     int       `json:"entries"`
	Hash        string    `json:"hash,omitempty"`       // SHA256 hex of the file content
	LastError   string    `json:"last_error,omitempty"` // Empty when Status is ok
	RefreshedAt time.Time `json:"refreshed_at"`
}

// RefreshRecord is one completed refresh cycle over all bookmark files.
type RefreshRecord struct {
	ID            int64         `json:"id"`
	Trigger       string        `json:"trigger"` // "startup", "change" or "manual"
	Entries       int           `json:"entries"`
	FailedSources int           `json:"failed_sources"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
}
