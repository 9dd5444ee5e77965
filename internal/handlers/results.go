package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/provider"
	"bookmarks-search/internal/shell"
)

// MetasRequest asks for display data of result ids.
type MetasRequest struct {
	IDs []string `json:"ids"`
}

// MetasResponse holds display data for the requested ids that still resolve.
type MetasResponse struct {
	Metas []provider.ResultMeta `json:"metas"`
}

// MetasHandler handles result metadata requests.
type MetasHandler struct {
	integration *shell.Integration
}

// NewMetasHandler creates a new MetasHandler.
func NewMetasHandler(integration *shell.Integration) *MetasHandler {
	return &MetasHandler{integration: integration}
}

// ServeHTTP handles POST /api/results/metas.
func (h *MetasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req MetasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.integration.Provider()
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to load result metas")
		return
	}

	writeJSON(ctx, w, http.StatusOK, MetasResponse{Metas: p.ResultMetas(req.IDs)})
}

// ActivateHandler opens a result with the default URI handler.
type ActivateHandler struct {
	integration *shell.Integration
}

// NewActivateHandler creates a new ActivateHandler.
func NewActivateHandler(integration *shell.Integration) *ActivateHandler {
	return &ActivateHandler{integration: integration}
}

// ServeHTTP handles POST /api/results/{id}/activate.
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	p, err := h.integration.Provider()
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to activate result")
		return
	}

	if err := p.Activate(ctx, chi.URLParam(r, "id")); err != nil {
		// Remaining failures come from the launcher.
		handleError(ctx, w, err, http.StatusBadGateway, "Failed to open bookmark")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
