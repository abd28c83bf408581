package eventlogs

import (
	"link-rotator/internal/shared/metrics"
)

var (
	metricEventAppendedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEventLog,
			Name:      "events_appended_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricSegmentRotationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEventLog,
			Name:      "segment_rotations_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricMalformedLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEventLog,
			Name:      "malformed_lines_total",
		},
		[]string{"reader"},
	)

	metricReadDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEventLog,
			Name:      "read_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"reader"},
	)
)

const (
	readerFull = "full"
	readerTail = "tail"

	appendErrLock   = "lock"
	appendErrRotate = "rotate"
	appendErrWrite  = "write"
	appendErrEncode = "encode"
)
