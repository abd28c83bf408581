package eventlogs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"link-rotator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func line(t *testing.T, e models.Event) string {
	t.Helper()
	b, err := encodeLine(e)
	require.NoError(t, err)
	return strings.TrimSuffix(string(b), "\n")
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	at := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	first, second := testEvent(1, at), testEvent(2, at.Add(time.Second))

	writeLines(t, layout.LivePath(),
		line(t, first),
		`{"url":"https://no-timestamp.example"}`,
		`{not json`,
		``,
		`{"timestamp":"yesterday","url":"https://bad-time.example"}`,
		line(t, second),
	)

	got, err := NewReader(layout).Read(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.Event{first, second}, got)
}

func TestRead_SkipsTrailingPartialLine(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	e := testEvent(1, time.Now())
	require.NoError(t, os.MkdirAll(layout.Dir, 0755))
	require.NoError(t, os.WriteFile(layout.LivePath(), []byte(line(t, e)+"\n"+`{"timestamp":"2025-12`), 0644))

	got, err := NewReader(layout).Read(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.Event{e}, got)
}

func TestRead_SegmentOrderAndSinceFilter(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	day := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)

	older := testEvent(1, day.Add(1*time.Hour))
	newer := testEvent(2, day.Add(2*time.Hour))
	live := testEvent(3, day.Add(3*time.Hour))
	ancient := testEvent(4, day.Add(-48*time.Hour))

	writeLines(t, filepath.Join(layout.Dir, "redirections.log.2025-12-28_01-30-00.bak"), line(t, ancient), line(t, older))
	writeLines(t, filepath.Join(layout.Dir, "redirections.log.2025-12-28_02-30-00.bak"), line(t, newer))
	writeLines(t, layout.LivePath(), line(t, live))
	// Not a segment of this log
	writeLines(t, filepath.Join(layout.Dir, "other.log.2025-12-28_02-30-00.bak"), line(t, testEvent(9, day)))

	ctx := context.Background()

	got, err := NewReader(layout).Read(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.Event{newer, ancient, older, live}, got)

	got, err = NewReader(layout, WithChronologicalOrder(true)).Read(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.Event{ancient, older, newer, live}, got)

	got, err = NewReader(layout).Read(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []models.Event{newer, older, live}, got)
}

func TestRead_MissingFiles(t *testing.T) {
	t.Parallel()

	got, err := NewReader(newTestLayout(t)).Read(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTail_NewestFirst(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	store := NewEventStore(layout, 0)
	ctx := context.Background()

	base := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)
	var appended []models.Event
	for i := 0; i < 30; i++ {
		e := testEvent(i, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Append(ctx, e))
		appended = append(appended, e)
	}

	got, err := NewReader(layout).Tail(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, appended[29-i], got[i])
	}

	got, err = NewReader(layout).Tail(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, 30)
}

func TestTail_SpansBlocksAndSkipsMalformed(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	base := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

	// Long user agents push the lines across several read blocks.
	var lines []string
	var valid []models.Event
	for i := 0; i < 40; i++ {
		e := testEvent(i, base.Add(time.Duration(i)*time.Second))
		e.UserAgent = strings.Repeat("x", 5000)
		valid = append(valid, e)
		lines = append(lines, line(t, e))
		if i == 38 {
			lines = append(lines, `{broken`)
		}
	}
	writeLines(t, layout.LivePath(), lines...)

	got, err := NewReader(layout).Tail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []models.Event{valid[39], valid[38], valid[37]}, got)

	got, err = NewReader(layout).Tail(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, got, 40)
	assert.Equal(t, valid[0], got[39])
}

func TestTail_MissingLiveSegment(t *testing.T) {
	t.Parallel()

	got, err := NewReader(newTestLayout(t)).Tail(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// rotateLive moves the live segment aside the way the store does and starts
// a new live segment holding next.
func rotateLive(t *testing.T, layout Layout, at time.Time, next models.Event) {
	t.Helper()
	require.NoError(t, os.Rename(layout.LivePath(), layout.rotatedName(at, 0)))
	writeLines(t, layout.LivePath(), line(t, next))
}

func TestRead_RotationBeforeLiveOpen(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	base := time.Date(2025, 12, 28, 12, 0, 0, 0, time.UTC)
	e0, e1, e2 := testEvent(0, base), testEvent(1, base.Add(time.Minute)), testEvent(2, base.Add(2*time.Minute))
	writeLines(t, layout.LivePath(), line(t, e0), line(t, e1))

	reader := NewReader(layout).(*segmentReader)
	reader.openLive = func(name string) (*os.File, error) {
		rotateLive(t, layout, base.Add(time.Hour), e2)
		return os.Open(name)
	}

	got, err := reader.Read(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.Event{e0, e1, e2}, got)
}

func TestRead_RotationAfterLiveOpen(t *testing.T) {
	t.Parallel()

	layout := newTestLayout(t)
	base := time.Date(2025, 12, 28, 12, 0, 0, 0, time.UTC)
	e0, e1, e2 := testEvent(0, base), testEvent(1, base.Add(time.Minute)), testEvent(2, base.Add(2*time.Minute))
	writeLines(t, layout.LivePath(), line(t, e0), line(t, e1))

	reader := NewReader(layout).(*segmentReader)
	reader.openLive = func(name string) (*os.File, error) {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		rotateLive(t, layout, base.Add(time.Hour), e2)
		return f, nil
	}

	got, err := reader.Read(context.Background(), time.Time{})
	require.NoError(t, err)
	// The open handle already covers the rotated segment, read it once.
	assert.Equal(t, []models.Event{e0, e1}, got)
}
