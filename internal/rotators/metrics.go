package rotators

import (
	"link-rotator/internal/shared/metrics"
)

var (
	metricRedirectsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRedirect,
			Name:      "redirects_total",
		},
		[]string{metrics.FieldOutcome, metrics.FieldErrorCode},
	)

	metricEventSinkFailuresTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRedirect,
			Name:      "event_sink_failures_total",
		},
		[]string{},
	)
)

const (
	outcomeActiveSet = "active_set"
	outcomeFallback  = "fallback"
	outcomeFailed    = "failed"
)
