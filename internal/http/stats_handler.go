package http

import (
	"net/http"
	"strconv"
	"strings"

	"link-rotator/internal/aggregators"
	"link-rotator/internal/models"
)

const (
	queryPeriod = "period"
	queryFormat = "format"
	queryLimit  = "limit"

	formatJSON    = "json"
	formatSummary = "summary"
	formatLogs    = "logs"
)

type statsHandler struct {
	statsService aggregators.StatsService
}

func NewStatsHandler(statsService aggregators.StatsService) AppHttpHandler {
	return &statsHandler{
		statsService: statsService,
	}
}

// Handle processes GET /api/logs. Unknown formats fall back to the full
// stats and unknown periods to "all".
func (h *statsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	period := models.ParsePeriod(query.Get(queryPeriod))

	var (
		body any
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(query.Get(queryFormat))) {
	case formatLogs:
		body, err = h.statsService.RecentLogs(r.Context(), parseLimit(query.Get(queryLimit)))
	case formatSummary:
		body, err = h.statsService.Summary(r.Context(), period)
	default:
		body, err = h.statsService.Stats(r.Context(), period)
	}
	if err != nil {
		return err
	}

	w.Header().Set(headerCacheControl, noStoreCacheControl)
	writeJSON(w, http.StatusOK, body)
	return nil
}

// parseLimit maps a missing limit to the default and an unparsable one to
// zero, which the service clamps up to the minimum.
func parseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return aggregators.DefaultRecentLogsLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
