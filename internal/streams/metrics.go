package streams

import (
	"link-rotator/internal/shared/metrics"
)

var (
	streamRedirectRecorded = "redirect_recorded"

	metricRedirectEventProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "redirect_event_published_total",
		},
		[]string{"stream_id"},
	)

	metricRedirectEventDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "redirect_event_dropped_total",
		},
		[]string{"stream_id", "reason"},
	)

	metricRedirectEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "redirect_event_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricRedirectEventQueueLatency = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "redirect_event_queue_latency_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"stream_id"},
	)
)

const (
	dropReasonFull   = "full"
	dropReasonClosed = "closed"

	consumeErrAppend = "append"
)
