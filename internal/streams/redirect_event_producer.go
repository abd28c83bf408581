package streams

import (
	"context"
	"errors"
	"time"

	"link-rotator/internal/events"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/ids"
)

// redirectEventProducer is the async EventSink. It enqueues the event and
// returns at once; a RedirectEventConsumer performs the append.
//
// Partition strategy:
//
//	partitionKey = visitor IP
//
// Events from one visitor land on one partition, so a single writer keeps
// their relative order. Different visitors append in parallel lanes that
// serialize again on the event store's lock.
//
// A full partition drops the event instead of blocking the redirect.
type redirectEventProducer struct {
	queue *PartitionedQueue[events.RedirectRecordedEvent]
	now   func() time.Time
}

func NewAsyncEventSink(queue *PartitionedQueue[events.RedirectRecordedEvent]) EventSink {
	return &redirectEventProducer{
		queue: queue,
		now:   time.Now,
	}
}

func (producer *redirectEventProducer) Submit(ctx context.Context, event models.Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := events.RedirectRecordedEvent{
		RequestID:  ids.RequestIDFrom(ctx),
		EnqueuedAt: producer.now(),
		Event:      event,
	}

	if err := producer.queue.TryPublish(msg.PartitionKey(), msg); err != nil {
		reason := dropReasonFull
		if errors.Is(err, ErrQueueClosed) {
			reason = dropReasonClosed
		}
		metricRedirectEventDroppedTotal.WithLabelValues(streamRedirectRecorded, reason).Inc()
		return err
	}
	metricRedirectEventProducedTotal.WithLabelValues(streamRedirectRecorded).Inc()
	return nil
}
