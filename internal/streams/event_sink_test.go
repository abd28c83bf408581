package streams

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"link-rotator/internal/eventlogs"
	eventlogmocks "link-rotator/internal/eventlogs/mocks"
	"link-rotator/internal/events"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/ids"
	"link-rotator/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleEvent(i int) models.Event {
	return models.NewEvent(
		time.Date(2025, 3, 1, 12, 0, i%60, 0, time.UTC),
		fmt.Sprintf("https://example.com/%d", i),
		fmt.Sprintf("198.51.100.%d", i%200),
		"Mozilla/5.0",
		"",
		models.Location{CountryCode: "DE", City: "Berlin"},
	)
}

func TestSyncEventSink_AppendsWithDeadline(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := eventlogmocks.NewMockEventStore(ctrl)
	event := sampleEvent(1)

	store.EXPECT().Append(gomock.Any(), event).DoAndReturn(func(ctx context.Context, _ models.Event) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})

	sink := NewSyncEventSink(store, time.Second)
	require.NoError(t, sink.Submit(context.Background(), event))
}

func TestSyncEventSink_SurvivesCancelledRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := eventlogmocks.NewMockEventStore(ctrl)
	store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ models.Event) error {
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := NewSyncEventSink(store, time.Second)
	assert.NoError(t, sink.Submit(ctx, sampleEvent(1)))
}

func TestSyncEventSink_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := eventlogmocks.NewMockEventStore(ctrl)
	store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(eventlogs.ErrLockNotAcquired)

	sink := NewSyncEventSink(store, 0)
	assert.ErrorIs(t, sink.Submit(context.Background(), sampleEvent(1)), eventlogs.ErrLockNotAcquired)
}

func TestNoopEventSink(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewNoopEventSink().Submit(context.Background(), sampleEvent(1)))
}

func TestAsyncEventSink_DropsWhenFull(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](1, 1)
	sink := NewAsyncEventSink(queue)

	require.NoError(t, sink.Submit(context.Background(), sampleEvent(1)))
	assert.ErrorIs(t, sink.Submit(context.Background(), sampleEvent(2)), ErrQueueFull)
}

func TestAsyncEventSink_CarriesRequestID(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](1, 1)
	sink := NewAsyncEventSink(queue)

	ctx := ids.WithRequestID(context.Background(), "req-42")
	require.NoError(t, sink.Submit(ctx, sampleEvent(1)))

	msg := <-queue.partitions[0]
	assert.Equal(t, "req-42", msg.RequestID)
	assert.False(t, msg.EnqueuedAt.IsZero())
}

func TestAsyncEventSink_CancelledContext(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](1, 1)
	sink := NewAsyncEventSink(queue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Submit(ctx, sampleEvent(1)), context.Canceled)
}

func TestRedirectEventConsumer_StopDrainsQueue(t *testing.T) {
	t.Parallel()

	layout := eventlogs.Layout{Dir: filepath.Join(t.TempDir(), "logs"), Base: "redirections.log"}
	store := eventlogs.NewEventStore(layout, 0)

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](4, 256)
	sink := NewAsyncEventSink(queue)
	consumer := NewRedirectEventConsumer(queue, store, time.Second, loggers.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Submit(context.Background(), sampleEvent(i)))
		}()
	}
	wg.Wait()

	// Cancelling the start context must not lose buffered events.
	cancel()
	consumer.Stop()

	got, err := eventlogs.NewReader(layout).Read(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, got, n)

	assert.ErrorIs(t, sink.Submit(context.Background(), sampleEvent(n)), ErrQueueClosed)
}

func TestRedirectEventConsumer_StoreErrorDoesNotStopWorker(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := eventlogmocks.NewMockEventStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
		store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil),
	)

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](1, 4)
	sink := NewAsyncEventSink(queue)
	consumer := NewRedirectEventConsumer(queue, store, time.Second, loggers.Nop())
	consumer.Start(context.Background())

	require.NoError(t, sink.Submit(context.Background(), sampleEvent(1)))
	require.NoError(t, sink.Submit(context.Background(), sampleEvent(2)))
	consumer.Stop()
}

func TestRedirectEventConsumer_RecoversPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := eventlogmocks.NewMockEventStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, models.Event) error {
			panic("boom")
		}),
		store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil),
	)

	queue := NewPartitionedQueue[events.RedirectRecordedEvent](1, 4)
	sink := NewAsyncEventSink(queue)
	consumer := NewRedirectEventConsumer(queue, store, time.Second, loggers.Nop())
	consumer.Start(context.Background())

	require.NoError(t, sink.Submit(context.Background(), sampleEvent(1)))
	require.NoError(t, sink.Submit(context.Background(), sampleEvent(2)))
	consumer.Stop()
}
