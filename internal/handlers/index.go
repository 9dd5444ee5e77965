package handlers

import (
	"net/http"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/shell"
)

// IndexHandler handles HTTP requests for reloading the bookmark files.
type IndexHandler struct {
	integration *shell.Integration
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(integration *shell.Integration) *IndexHandler {
	return &IndexHandler{integration: integration}
}

// IndexResponse represents the response from the refresh endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

// ServeHTTP handles POST /api/index/refresh. Reloading is fast, so it runs
// synchronously and reports the resulting entry count.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger.InfoContext(ctx, "refresh triggered via API")

	entries, err := h.integration.Refresh(ctx)
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to refresh bookmarks")
		return
	}

	writeJSON(ctx, w, http.StatusOK, IndexResponse{
		Message: "Bookmarks reloaded.",
		Status:  "ok",
		Entries: entries,
	})
}
