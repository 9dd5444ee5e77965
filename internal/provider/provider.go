// Package provider adapts the bookmark index to the host search surface.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"bookmarks-search/internal/bookmarks"
	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/desktop"
	"bookmarks-search/internal/search"
)

// Name is the display name of the bookmarks provider.
const Name = "CHROME BOOKMARKS"

// SearchProvider is the capability set the host search surface calls.
type SearchProvider interface {
	Name() string
	InitialResultSet(terms []string) []string
	SubsearchResultSet(previous, terms []string) []string
	ResultMetas(ids []string) []ResultMeta
	Activate(ctx context.Context, id string) error
}

// Source is a read-only view of indexed bookmarks.
type Source interface {
	All() []bookmarks.Entry
	Lookup(id string) (bookmarks.Entry, bool)
}

// IconSource picks the icon shown next to results.
type IconSource interface {
	IconName() string
}

// ResultMeta describes one result row for the host.
type ResultMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// Provider answers host search requests from a bookmark source.
type Provider struct {
	source   Source
	launcher desktop.Launcher
	icons    IconSource
}

var _ SearchProvider = (*Provider)(nil)

// New creates a provider reading from source and opening results with launcher.
func New(source Source, launcher desktop.Launcher, icons IconSource) *Provider {
	return &Provider{source: source, launcher: launcher, icons: icons}
}

// Name returns the provider display name.
func (p *Provider) Name() string {
	return Name
}

// InitialResultSet returns the ids of all matches for terms, one per matching
// (entry, term) pair.
func (p *Provider) InitialResultSet(terms []string) []string {
	matches := search.Search(p.source.All(), terms)
	return lo.Map(matches, func(m search.Match, _ int) string {
		return m.ID()
	})
}

// SubsearchResultSet runs a fresh search over the whole index. The previous
// result set is not used for filtering.
func (p *Provider) SubsearchResultSet(_ []string, terms []string) []string {
	return p.InitialResultSet(terms)
}

// ResultMetas returns display data for ids, in the order given. Ids that
// no longer resolve are skipped.
func (p *Provider) ResultMetas(ids []string) []ResultMeta {
	icon := p.icons.IconName()
	return lo.FilterMap(ids, func(id string, _ int) (ResultMeta, bool) {
		entry, ok := p.source.Lookup(id)
		if !ok {
			return ResultMeta{}, false
		}
		return ResultMeta{
			ID:   id,
			Name: entry.DisplayName(),
			URL:  entry.URL,
			Icon: icon,
		}, true
	})
}

// Activate opens the bookmark behind id with the default URI handler.
func (p *Provider) Activate(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	entry, ok := p.source.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "opening bookmark", "url", entry.URL)
	if err := p.launcher.Open(ctx, entry.URL); err != nil {
		return fmt.Errorf("failed to activate result: %w", err)
	}
	return nil
}
