package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/shell"
)

// ResultSetResponse is a list of result ids.
type ResultSetResponse struct {
	Results []string `json:"results"`
}

// SubsearchRequest narrows a previous result set with new terms.
type SubsearchRequest struct {
	Previous []string `json:"previous"`
	Terms    []string `json:"terms"`
}

// SearchHandler handles initial searches.
type SearchHandler struct {
	integration *shell.Integration
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(integration *shell.Integration) *SearchHandler {
	return &SearchHandler{integration: integration}
}

// ServeHTTP handles GET /api/search?q=terms. Terms are separated by
// whitespace; q may be repeated.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	p, err := h.integration.Provider()
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to search bookmarks")
		return
	}

	var terms []string
	for _, q := range r.URL.Query()["q"] {
		terms = append(terms, strings.Fields(q)...)
	}

	ids := p.InitialResultSet(terms)
	logger.DebugContext(ctx, "search completed", "terms", len(terms), "results", len(ids))
	writeJSON(ctx, w, http.StatusOK, ResultSetResponse{Results: ids})
}

// SubsearchHandler handles searches refining a previous result set.
type SubsearchHandler struct {
	integration *shell.Integration
}

// NewSubsearchHandler creates a new SubsearchHandler.
func NewSubsearchHandler(integration *shell.Integration) *SubsearchHandler {
	return &SubsearchHandler{integration: integration}
}

// ServeHTTP handles POST /api/search/subsearch.
func (h *SubsearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SubsearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.integration.Provider()
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to search bookmarks")
		return
	}

	ids := p.SubsearchResultSet(req.Previous, req.Terms)
	writeJSON(ctx, w, http.StatusOK, ResultSetResponse{Results: ids})
}
