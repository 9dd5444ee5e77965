package bookmarks

import "github.com/google/uuid"

// idNamespace scopes the name-based UUIDs used as result identifiers.
var idNamespace = uuid.MustParse("6f1c3f0e-4a4e-4b8e-9d2a-0c7a1b5e2f11")

// Entry is a single bookmark extracted from a bookmark tree.
// Two entries are equal when both title and URL are equal.
type Entry struct {
	Title string `json:"title"` // May be empty
	URL   string `json:"url"`
}

// ID returns a stable identifier for the (title, url) pair.
// The same pair always yields the same ID, across refreshes and restarts.
func (e Entry) ID() string {
	return uuid.NewSHA1(idNamespace, []byte(e.Title+"\x00"+e.URL)).String()
}

// DisplayName returns the title, falling back to the URL when the title is empty.
func (e Entry) DisplayName() string {
	if e.Title != "" {
		return e.Title
	}
	return e.URL
}
