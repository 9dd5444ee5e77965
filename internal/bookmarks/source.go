package bookmarks

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// EnvBookmarkFile names the environment variable holding an explicit bookmark file path.
const EnvBookmarkFile = "CHROME_BOOKMARK_FILE"

// DefaultRelativePaths are the Google Chrome and Chromium default-profile
// bookmark files, relative to the user's home directory.
var DefaultRelativePaths = []string{
	".config/google-chrome/Default/Bookmarks",
	".config/chromium/Default/Bookmarks",
}

// ResolveSources returns the bookmark files to index. An explicit override
// replaces the defaults entirely.
func ResolveSources(override, homeDir string) []string {
	if override != "" {
		return []string{override}
	}
	paths := make([]string, 0, len(DefaultRelativePaths))
	for _, rel := range DefaultRelativePaths {
		paths = append(paths, filepath.Join(homeDir, rel))
	}
	return paths
}

// SourceLoad is the result of reading one bookmark file.
type SourceLoad struct {
	Path    string
	Entries []Entry
	Hash    string // SHA256 hex of the raw file content
}

// ReadSource reads and parses a single bookmark file.
// Failures are returned as *SourceError.
func ReadSource(path string) (SourceLoad, error) {
	load := SourceLoad{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return load, &SourceError{Path: path, Kind: ErrFileUnreadable, Err: err}
	}
	if len(data) == 0 {
		return load, &SourceError{Path: path, Kind: ErrEmptyContent}
	}
	load.Hash = fmt.Sprintf("%x", sha256.Sum256(data))

	entries, err := Parse(data)
	if err != nil {
		return load, &SourceError{Path: path, Kind: ErrParse, Err: err}
	}
	load.Entries = entries
	return load, nil
}
