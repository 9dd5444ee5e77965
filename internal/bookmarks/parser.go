package bookmarks

import (
	"encoding/json"
	"fmt"
)

// typeURL is the node type tag that marks a bookmark.
const typeURL = "url"

// document is the top level of a Chromium "Bookmarks" file.
type document struct {
	Roots *struct {
		BookmarkBar *node `json:"bookmark_bar"`
		Other       *node `json:"other"`
	} `json:"roots"`
}

// node is either a folder (has children) or a bookmark (type "url"), or both.
type node struct {
	Type     string
	Name     string
	URL      string
	Children []*node
}

// UnmarshalJSON decodes a node leniently: fields of an unexpected type read
// as empty and a value that is not an object yields an empty node, so one
// odd node never costs the rest of the file.
func (n *node) UnmarshalJSON(data []byte) error {
	*n = node{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	n.Type = stringField(fields["type"])
	n.Name = stringField(fields["name"])
	n.URL = stringField(fields["url"])

	var children []json.RawMessage
	if err := json.Unmarshal(fields["children"], &children); err != nil {
		return nil
	}
	for _, raw := range children {
		child := &node{}
		_ = json.Unmarshal(raw, child)
		n.Children = append(n.Children, child)
	}
	return nil
}

// stringField returns raw as a string, or "" when it is missing or not a string.
func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Parse decodes a bookmark document and flattens the bookmark_bar and other
// roots, in that order, into entries in pre-order document order.
// Folder structure is discarded. Errors wrap ErrParse.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc.Roots == nil {
		return nil, fmt.Errorf("%w: missing roots object", ErrParse)
	}

	var entries []Entry
	entries = walk(doc.Roots.BookmarkBar, entries)
	entries = walk(doc.Roots.Other, entries)
	return entries, nil
}

// walk appends the entries below n. Children are visited whatever the node's
// type, so a bookmark that also carries children yields both.
func walk(n *node, entries []Entry) []Entry {
	if n == nil {
		return entries
	}
	if n.Type == typeURL && n.URL != "" {
		entries = append(entries, Entry{Title: n.Name, URL: n.URL})
	}
	for _, child := range n.Children {
		entries = walk(child, entries)
	}
	return entries
}
