package handlers

import (
	"context"
	"net/http"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/shell"
)

// ShellHandler enables or disables the bookmarks provider.
type ShellHandler struct {
	integration *shell.Integration
	enable      bool
}

// NewEnableHandler creates a handler that enables the provider.
func NewEnableHandler(integration *shell.Integration) *ShellHandler {
	return &ShellHandler{integration: integration, enable: true}
}

// NewDisableHandler creates a handler that disables the provider.
func NewDisableHandler(integration *shell.Integration) *ShellHandler {
	return &ShellHandler{integration: integration}
}

// ServeHTTP handles POST /api/shell/enable and /api/shell/disable. Both are
// idempotent and respond with the resulting status.
func (h *ShellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var err error
	if h.enable {
		// The index outlives the request.
		err = h.integration.Enable(contextutil.WithLogger(context.WithoutCancel(ctx), logger))
	} else {
		err = h.integration.Disable()
	}
	if err != nil {
		handleError(ctx, w, err, http.StatusInternalServerError, "Failed to change provider state")
		return
	}

	writeJSON(ctx, w, http.StatusOK, h.integration.Status())
}
