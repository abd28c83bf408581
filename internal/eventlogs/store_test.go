package eventlogs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"link-rotator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(i int, at time.Time) models.Event {
	return models.Event{
		Timestamp: at.Format(time.RFC3339),
		URL:       fmt.Sprintf("https://example.com/%d", i),
		IP:        fmt.Sprintf("203.0.113.%d", i%250),
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0",
		Referer:   "",
		Country:   "FR",
		City:      "Paris",
	}
}

func newTestLayout(t *testing.T) Layout {
	return Layout{Dir: filepath.Join(t.TempDir(), "logs"), Base: "redirections.log"}
}

func TestAppendRead_RoundTrip(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	store := NewEventStore(layout, 0)
	reader := NewReader(layout)
	ctx := context.Background()

	base := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	const k = 50
	var want []models.Event
	for i := 0; i < k; i++ {
		e := testEvent(i, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Append(ctx, e))
		want = append(want, e)
	}

	got, err := reader.Read(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAppend_CreatesDirectory(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	store := NewEventStore(layout, 0)

	require.NoError(t, store.Append(context.Background(), testEvent(1, time.Now())))

	_, err := os.Stat(layout.LivePath())
	assert.NoError(t, err)
}

func TestAppend_RotatesWithoutLoss(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	now := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	// Every append after the first one overflows the live segment.
	store := NewEventStore(layout, 10, WithClock(clock))
	reader := NewReader(layout, WithChronologicalOrder(true))
	ctx := context.Background()

	base := time.Date(2025, 12, 28, 12, 0, 0, 0, time.UTC)
	var want []models.Event
	for i := 0; i < 4; i++ {
		e := testEvent(i, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Append(ctx, e))
		want = append(want, e)
	}

	rotated, err := layout.RotatedSegments()
	require.NoError(t, err)
	assert.Len(t, rotated, 3)

	got, err := reader.Read(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	live, err := os.ReadFile(layout.LivePath())
	require.NoError(t, err)
	assert.Contains(t, string(live), want[3].URL)
	assert.NotContains(t, string(live), want[2].URL)
}

func TestAppend_RotationNameCollision(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	fixed := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	store := NewEventStore(layout, 10, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, testEvent(i, fixed)))
	}

	rotated, err := layout.RotatedSegments()
	require.NoError(t, err)
	require.Len(t, rotated, 2)
	assert.Equal(t, filepath.Join(layout.Dir, "redirections.log.2025-12-28_18-00-00-1.bak"), rotated[0])
	assert.Equal(t, filepath.Join(layout.Dir, "redirections.log.2025-12-28_18-00-00.bak"), rotated[1])
}

func TestAppend_ConcurrentWritesStayWhole(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	store := NewEventStore(layout, 0)
	reader := NewReader(layout)
	ctx := context.Background()

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				assert.NoError(t, store.Append(ctx, testEvent(w*perWorker+i, time.Now())))
			}
		}(w)
	}
	wg.Wait()

	got, err := reader.Read(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, got, workers*perWorker)
}

func TestAppend_CancelledContext(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	require.NoError(t, os.MkdirAll(layout.Dir, 0755))

	// Hold the file lock from another handle so the append has to wait.
	holder := NewEventStore(layout, 0).(*segmentStore)
	require.NoError(t, holder.lock.Lock())
	defer holder.lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewEventStore(layout, 0).Append(ctx, testEvent(1, time.Now()))
	assert.Error(t, err)
}
