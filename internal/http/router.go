package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bookmarks-search/internal/handlers"
	"bookmarks-search/internal/shell"
	"bookmarks-search/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Integration  *shell.Integration
	Journal      storage.Journal       // Optional, enables source status in health
	RecentErrors handlers.RecentErrors // Optional
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.Integration))
		r.Method(http.MethodPost, "/search/subsearch", handlers.NewSubsearchHandler(deps.Integration))
		r.Method(http.MethodPost, "/results/metas", handlers.NewMetasHandler(deps.Integration))
		r.Method(http.MethodPost, "/results/{id}/activate", handlers.NewActivateHandler(deps.Integration))
		r.Method(http.MethodPost, "/index/refresh", handlers.NewIndexHandler(deps.Integration))
		r.Method(http.MethodPost, "/shell/enable", handlers.NewEnableHandler(deps.Integration))
		r.Method(http.MethodPost, "/shell/disable", handlers.NewDisableHandler(deps.Integration))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Integration, deps.Journal, deps.RecentErrors))
	})

	return r
}
