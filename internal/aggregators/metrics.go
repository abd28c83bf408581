package aggregators

import (
	"link-rotator/internal/shared/metrics"
)

// metricStatsQueriesTotal counts stats queries by period and format.
//
// Every query is a full re-scan of the window, so a high rate on the "all"
// period is the first thing to look at when the stats endpoint gets slow.
var (
	metricStatsQueriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "queries_total",
		},
		[]string{"period", "format", metrics.FieldErrorCode},
	)

	metricEventsScanned = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStats,
			Name:      "events_scanned",
			Buckets:   []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"period"},
	)
)

const (
	formatJSON    = "json"
	formatSummary = "summary"
	formatLogs    = "logs"
)
