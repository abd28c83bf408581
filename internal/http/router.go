package http

import (
	"net/http"

	"link-rotator/internal/aggregators"
	"link-rotator/internal/healthchecks"
	"link-rotator/internal/rotators"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/metrics"
	"link-rotator/internal/updaters"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
)

type RouterDeps struct {
	RedirectService rotators.RedirectService
	HealthService   healthchecks.HealthService
	StatsService    aggregators.StatsService
	UpdateService   updaters.UpdateService
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDeps, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	redirectHandler := htmlErrorHandlingAdapter(NewRedirectHandler(deps.RedirectService))
	healthHandler := errorHandlingAdapter(NewHealthHandler(deps.HealthService))
	statsHandler := gzhttp.GzipHandler(errorHandlingAdapter(NewStatsHandler(deps.StatsService)))
	updateURLsHandler := errorHandlingAdapter(NewUpdateURLsHandler(deps.UpdateService))

	// Routes
	router.HandleFunc("/", redirectHandler)
	// Any other unmatched path redirects too. Known API paths keep their 405.
	router.NotFound(redirectHandler)
	router.Get("/api/health", healthHandler)
	router.Method(http.MethodGet, "/api/logs", statsHandler)
	router.HandleFunc("/api/update-urls", updateURLsHandler)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
