// Package search matches bookmark entries against user query terms.
package search

import (
	"regexp"

	"bookmarks-search/internal/bookmarks"
)

// Match is a bookmark that matched one query term.
type Match struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ID returns the identifier of the matched entry.
func (m Match) ID() string {
	return bookmarks.Entry{Title: m.Title, URL: m.URL}.ID()
}

// Search tests every entry against every term, in the caller's order.
//
// Each term is a case-insensitive regular expression matched against the
// entry's title and URL concatenated without a separator. An entry is
// reported once per matching term, so an entry matching two terms appears
// twice. Terms that are not valid expressions are skipped.
func Search(entries []bookmarks.Entry, terms []string) []Match {
	patterns := compile(terms)
	results := make([]Match, 0)
	if len(patterns) == 0 {
		return results
	}

	for _, e := range entries {
		haystack := e.Title + e.URL
		for _, re := range patterns {
			if re.MatchString(haystack) {
				results = append(results, Match{Title: e.Title, URL: e.URL})
			}
		}
	}
	return results
}

// compile returns the valid patterns among terms, keeping their order.
func compile(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		re, err := regexp.Compile("(?i)" + term)
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}
	return patterns
}
