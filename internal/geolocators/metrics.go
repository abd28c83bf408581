package geolocators

import (
	"link-rotator/internal/shared/metrics"
)

var (
	metricGeoLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeo,
			Name:      "lookups_total",
		},
		[]string{"source"},
	)

	metricGeoAPIDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeo,
			Name:      "api_duration_seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{metrics.FieldOutcome},
	)
)

const (
	sourceSkipped   = "skipped"
	sourceMemory    = "memory"
	sourceFile      = "file"
	sourceAPI       = "api"
	sourceThrottled = "throttled"
	sourceFailed    = "failed"

	apiOutcomeSuccess = "success"
	apiOutcomeFail    = "fail"
	apiOutcomeError   = "error"
)
