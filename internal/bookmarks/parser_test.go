package bookmarks

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []Entry
	}{
		{
			name: "nested folders in pre-order",
			doc: `{"roots": {
				"bookmark_bar": {"type": "folder", "name": "Bar", "children": [
					{"type": "url", "name": "Go", "url": "https://go.dev"},
					{"type": "folder", "name": "News", "children": [
						{"type": "url", "name": "HN", "url": "https://news.ycombinator.com"},
						{"type": "folder", "name": "Deep", "children": [
							{"type": "url", "name": "LWN", "url": "https://lwn.net"}
						]}
					]},
					{"type": "url", "name": "Chi", "url": "https://go-chi.io"}
				]},
				"other": {"type": "folder", "name": "Other", "children": [
					{"type": "url", "name": "Example", "url": "http://example.com"}
				]}
			}}`,
			want: []Entry{
				{Title: "Go", URL: "https://go.dev"},
				{Title: "HN", URL: "https://news.ycombinator.com"},
				{Title: "LWN", URL: "https://lwn.net"},
				{Title: "Chi", URL: "https://go-chi.io"},
				{Title: "Example", URL: "http://example.com"},
			},
		},
		{
			name: "bookmark with children yields itself and descendants",
			doc: `{"roots": {
				"bookmark_bar": {"children": [
					{"type": "url", "name": "Parent", "url": "http://parent", "children": [
						{"type": "url", "name": "Child", "url": "http://child"}
					]}
				]},
				"other": {"children": []}
			}}`,
			want: []Entry{
				{Title: "Parent", URL: "http://parent"},
				{Title: "Child", URL: "http://child"},
			},
		},
		{
			name: "missing name gives empty title",
			doc: `{"roots": {
				"bookmark_bar": {"children": [{"type": "url", "url": "http://untitled"}]},
				"other": {}
			}}`,
			want: []Entry{{Title: "", URL: "http://untitled"}},
		},
		{
			name: "nodes without children field",
			doc:  `{"roots": {"bookmark_bar": {"type": "folder"}, "other": {"type": "url", "name": "Solo", "url": "http://solo"}}}`,
			want: []Entry{{Title: "Solo", URL: "http://solo"}},
		},
		{
			name: "bookmark without url is skipped",
			doc:  `{"roots": {"bookmark_bar": {"children": [{"type": "url", "name": "Broken"}]}, "other": {}}}`,
			want: nil,
		},
		{
			name: "missing root members",
			doc:  `{"roots": {}}`,
			want: nil,
		},
		{
			name: "null children are ignored",
			doc:  `{"roots": {"bookmark_bar": {"children": [null, {"type": "url", "name": "A", "url": "http://a"}]}, "other": null}}`,
			want: []Entry{{Title: "A", URL: "http://a"}},
		},
		{
			name: "oddly typed fields do not drop the file",
			doc: `{"roots": {
				"bookmark_bar": {"children": [
					{"type": "url", "name": "Good", "url": "http://good"},
					{"type": "folder", "name": 7},
					{"type": "url", "name": ["x"], "url": "http://untitled"},
					{"type": "url", "name": "NoURL", "url": 42}
				]},
				"other": {"children": [
					{"type": "folder", "children": {"type": "url", "url": "http://ignored"}},
					"not a node",
					12,
					{"type": "url", "name": "Last", "url": "http://last"}
				]}
			}}`,
			want: []Entry{
				{Title: "Good", URL: "http://good"},
				{Title: "", URL: "http://untitled"},
				{Title: "Last", URL: "http://last"},
			},
		},
		{
			name: "root that is not an object",
			doc:  `{"roots": {"bookmark_bar": 5, "other": {"children": [{"type": "url", "name": "O", "url": "http://o"}]}}}`,
			want: []Entry{{Title: "O", URL: "http://o"}},
		},
		{
			name: "bookmark_bar entries come before other",
			doc: `{"roots": {
				"other": {"children": [{"type": "url", "name": "O", "url": "http://o"}]},
				"bookmark_bar": {"children": [{"type": "url", "name": "B", "url": "http://b"}]}
			}}`,
			want: []Entry{{Title: "B", URL: "http://b"}, {Title: "O", URL: "http://o"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "this is not json"},
		{name: "truncated", doc: `{"roots": {"bookmark_bar": {`},
		{name: "missing roots", doc: `{"version": 1}`},
		{name: "roots not an object", doc: `{"roots": "bookmark_bar"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse() error = %v, want ErrParse", err)
			}
		})
	}
}

func TestEntry_ID(t *testing.T) {
	a := Entry{Title: "Go", URL: "https://go.dev"}
	b := Entry{Title: "Go", URL: "https://go.dev"}
	c := Entry{Title: "Go ", URL: "https://go.dev"}
	d := Entry{Title: "Gohttps://go.dev", URL: ""}

	if a.ID() != b.ID() {
		t.Errorf("ID() differs for equal entries: %s vs %s", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Error("ID() should differ when titles differ")
	}
	if (Entry{Title: "Go", URL: "https://go.dev"}).ID() == d.ID() {
		t.Error("ID() should not collide when title and url are concatenated differently")
	}
}

func TestEntry_DisplayName(t *testing.T) {
	if got := (Entry{Title: "Go", URL: "https://go.dev"}).DisplayName(); got != "Go" {
		t.Errorf("DisplayName() = %q, want %q", got, "Go")
	}
	if got := (Entry{URL: "https://go.dev"}).DisplayName(); got != "https://go.dev" {
		t.Errorf("DisplayName() = %q, want url fallback", got)
	}
}
