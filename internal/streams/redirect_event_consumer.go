package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"link-rotator/internal/eventlogs"
	"link-rotator/internal/events"
	"link-rotator/internal/shared/ids"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/metrics"
	"link-rotator/internal/shared/svcerrors"
)

//go:generate mockgen -source=redirect_event_consumer.go -destination=./mocks/redirect_event_consumer_mock.go -package=mocks
type RedirectEventConsumer interface {
	Start(ctx context.Context)
	// Stop closes the queue, lets the workers drain what is buffered and
	// waits for them to exit.
	Stop()
}

type redirectEventConsumer struct {
	queue         *PartitionedQueue[events.RedirectRecordedEvent]
	store         eventlogs.EventStore
	appendTimeout time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once

	logger loggers.Logger
}

func NewRedirectEventConsumer(queue *PartitionedQueue[events.RedirectRecordedEvent], store eventlogs.EventStore, appendTimeout time.Duration, logger loggers.Logger) RedirectEventConsumer {
	if appendTimeout <= 0 {
		appendTimeout = DefaultAppendTimeout
	}
	return &redirectEventConsumer{
		queue:         queue,
		store:         store,
		appendTimeout: appendTimeout,
		logger:        logger,
	}
}

// Start spawns 1 worker goroutine per partition.
func (consumer *redirectEventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

func (consumer *redirectEventConsumer) Stop() {
	consumer.stopOnce.Do(consumer.queue.Close)
	consumer.wg.Wait()
}

// runPartitionWorker drains ch until the queue is closed. Cancelling ctx does
// not stop it, so events accepted before shutdown still reach the log.
func (consumer *redirectEventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.RedirectRecordedEvent) {
	baseCtx := context.WithoutCancel(ctx)
	for msg := range ch {
		consumer.consume(baseCtx, partitionIndex, msg)
	}
}

func (consumer *redirectEventConsumer) consume(ctx context.Context, partitionIndex int, msg events.RedirectRecordedEvent) {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = ids.NewRequestID()
	}
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, requestID).
		Logger().WithContext(ctx)

	// Handle panic recovery to prevent worker goroutine from crashing
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRedirectEventConsumedTotal.WithLabelValues(streamRedirectRecorded, svcErr.Code).Inc()
		}
	}()

	if !msg.EnqueuedAt.IsZero() {
		metricRedirectEventQueueLatency.WithLabelValues(streamRedirectRecorded).Observe(time.Since(msg.EnqueuedAt).Seconds())
	}

	appendCtx, cancel := context.WithTimeout(ctx, consumer.appendTimeout)
	defer cancel()

	if err := consumer.store.Append(appendCtx, msg.Event); err != nil {
		loggers.Ctx(ctx).Error().Err(err).
			Str(loggers.FieldTargetURL, msg.Event.URL).
			Msg("failed to append redirect event")
		metricRedirectEventConsumedTotal.WithLabelValues(streamRedirectRecorded, consumeErrAppend).Inc()
		return
	}
	metricRedirectEventConsumedTotal.WithLabelValues(streamRedirectRecorded, metrics.ValueNoError).Inc()
}
