package streams

import (
	"context"
	"time"

	"link-rotator/internal/eventlogs"
	"link-rotator/internal/models"
)

const DefaultAppendTimeout = 500 * time.Millisecond

// EventSink records one redirect event. Implementations never block the
// redirect longer than their append timeout.
//
//go:generate mockgen -source=event_sink.go -destination=./mocks/event_sink_mock.go -package=mocks
type EventSink interface {
	Submit(ctx context.Context, event models.Event) error
}

type syncEventSink struct {
	store   eventlogs.EventStore
	timeout time.Duration
}

// NewSyncEventSink appends on the caller's goroutine. The append outlives a
// cancelled request so a client hanging up does not lose its event.
func NewSyncEventSink(store eventlogs.EventStore, timeout time.Duration) EventSink {
	if timeout <= 0 {
		timeout = DefaultAppendTimeout
	}
	return &syncEventSink{store: store, timeout: timeout}
}

func (sink *syncEventSink) Submit(ctx context.Context, event models.Event) error {
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sink.timeout)
	defer cancel()

	return sink.store.Append(appendCtx, event)
}

type noopEventSink struct{}

// NewNoopEventSink discards events. Used when the event log is disabled.
func NewNoopEventSink() EventSink {
	return noopEventSink{}
}

func (noopEventSink) Submit(context.Context, models.Event) error { return nil }
