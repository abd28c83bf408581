package updaters

import (
	"link-rotator/internal/shared/metrics"
)

var (
	metricURLUpdatesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "url_updates_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRejectedURLsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "rejected_urls_total",
		},
		[]string{},
	)

	metricActiveURLs = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "active_urls",
		},
		[]string{},
	)
)
