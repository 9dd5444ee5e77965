package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookmarks-search/internal/contextutil"
	"bookmarks-search/internal/index"
	"bookmarks-search/internal/notify"
	"bookmarks-search/internal/shell"
	"bookmarks-search/internal/storage"
)

// RecentErrors exposes recently surfaced errors.
type RecentErrors interface {
	Recent() []notify.Notification
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	integration        *shell.Integration
	journal            storage.Journal
	recent             RecentErrors
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. journal and recent may be nil.
func NewHealthHandler(integration *shell.Integration, journal storage.Journal, recent RecentErrors) *HealthHandler {
	return &HealthHandler{
		integration:        integration,
		journal:            journal,
		recent:             recent,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Provider lifecycle and index size
	Index shell.Status `json:"index"`

	// Latest load outcome per bookmark file, from the journal
	Sources []storage.SourceRecord `json:"sources,omitempty"`

	// Most recent refresh cycle, from the journal
	LastRefresh *storage.RefreshRecord `json:"last_refresh,omitempty"`

	// Recently surfaced errors, oldest first
	RecentErrors []notify.Notification `json:"recent_errors,omitempty"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
// Returns 200 OK if healthy or degraded, 503 Service Unavailable if the
// provider is not enabled.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
		Index:     h.integration.Status(),
	}
	var issues []string

	if response.Index.Enabled && response.Index.State == index.StateReady {
		response.Checks["index"] = "ok"
	} else {
		response.Checks["index"] = "error"
		issues = append(issues, "provider_disabled")
	}

	if h.journal != nil {
		if h.checkJournal(checkCtx, &response) {
			response.Checks["journal"] = "ok"
		} else {
			response.Checks["journal"] = "error"
			issues = append(issues, "journal_unavailable")
		}
	}

	for _, src := range response.Sources {
		if src.Status != storage.StatusOK {
			issues = append(issues, "source_"+src.Status)
		}
	}

	if h.recent != nil {
		response.RecentErrors = h.recent.Recent()
	}

	httpStatus := http.StatusOK
	switch {
	case response.Checks["index"] != "ok":
		response.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case len(issues) > 0:
		response.Status = "degraded"
	default:
		response.Status = "healthy"
	}
	response.Issues = issues

	writeJSON(ctx, w, httpStatus, response)
}

// checkJournal loads per-source status and the latest refresh into response.
func (h *HealthHandler) checkJournal(ctx context.Context, response *HealthResponse) bool {
	logger := contextutil.LoggerFromContext(ctx)

	sources, err := h.journal.ListSources(ctx)
	if err != nil {
		logger.WarnContext(ctx, "journal health check failed", "error", err)
		return false
	}
	response.Sources = sources

	latest, err := h.journal.LatestRefresh(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.WarnContext(ctx, "failed to read latest refresh", "error", err)
		return false
	}
	response.LastRefresh = latest
	return true
}
