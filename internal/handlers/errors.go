package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/index"
	"bookmarks-search/internal/provider"
	"bookmarks-search/internal/shell"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleError maps known errors to status codes. Anything else is written
// with fallbackStatus and fallbackMsg.
func handleError(ctx context.Context, w http.ResponseWriter, err error, fallbackStatus int, fallbackMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var vErr *provider.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.WarnContext(ctx, "invalid request", "field", vErr.Field, "error", err)
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, provider.ErrNotFound):
		logger.WarnContext(ctx, "result not found", "error", err)
		writeError(w, http.StatusNotFound, "Result not found")
	case errors.Is(err, shell.ErrNotEnabled), errors.Is(err, index.ErrClosed):
		logger.WarnContext(ctx, "bookmarks search unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Bookmarks search is not enabled")
	default:
		logger.ErrorContext(ctx, fallbackMsg, "error", err)
		writeError(w, fallbackStatus, fallbackMsg)
	}
}
