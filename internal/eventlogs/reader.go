package eventlogs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"time"

	"link-rotator/internal/models"
)

const tailBlockSize = 64 * 1024

// Reader scans the event log without taking the append lock. A partially
// written trailing line is skipped like any other malformed line.
//
//go:generate mockgen -source=reader.go -destination=./mocks/reader_mock.go -package=mocks
type Reader interface {
	// Read returns every valid event with timestamp >= since, or all events
	// when since is zero. Rotated segments come first, most recent rotation
	// first, followed by the live segment.
	Read(ctx context.Context, since time.Time) ([]models.Event, error)
	// Tail returns up to n valid events from the end of the live segment,
	// newest first.
	Tail(ctx context.Context, n int) ([]models.Event, error)
}

type segmentReader struct {
	layout        Layout
	chronological bool
	openLive      func(name string) (*os.File, error)
}

type ReaderOption func(*segmentReader)

// WithChronologicalOrder sorts Read results by event timestamp. Events with
// equal timestamps keep their segment order.
func WithChronologicalOrder(enabled bool) ReaderOption {
	return func(r *segmentReader) {
		r.chronological = enabled
	}
}

func NewReader(layout Layout, opts ...ReaderOption) Reader {
	r := &segmentReader{layout: layout, openLive: os.Open}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type timedEvent struct {
	event models.Event
	at    time.Time
}

func (r *segmentReader) Read(ctx context.Context, since time.Time) ([]models.Event, error) {
	start := time.Now()
	defer func() {
		metricReadDurationSeconds.WithLabelValues(readerFull).Observe(time.Since(start).Seconds())
	}()

	paths, live, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if live != nil {
		defer live.Close()
	}

	var collected []timedEvent
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		collected, err = r.readSegment(path, since, collected)
		if err != nil {
			return nil, err
		}
	}
	if live != nil {
		if collected, err = scanSegment(live, since, collected); err != nil {
			return nil, err
		}
	}

	if r.chronological {
		sort.SliceStable(collected, func(i, j int) bool {
			return collected[i].at.Before(collected[j].at)
		})
	}

	events := make([]models.Event, len(collected))
	for i, te := range collected {
		events[i] = te.event
	}
	return events, nil
}

// snapshot opens the live segment and lists the rotated segments around
// that open. A segment rotated between the first listing and the open is
// picked up by the second listing. The open live file is excluded even if
// it gets rotated afterwards, so no segment is read twice.
func (r *segmentReader) snapshot() ([]string, *os.File, error) {
	before, err := r.layout.RotatedSegments()
	if err != nil {
		return nil, nil, err
	}

	live, err := r.openLive(r.layout.LivePath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, nil, err
		}
		live = nil
	}

	after, err := r.layout.RotatedSegments()
	if err != nil {
		if live != nil {
			live.Close()
		}
		return nil, nil, err
	}
	if len(after) == len(before) || live == nil {
		return after, live, nil
	}

	liveInfo, err := live.Stat()
	if err != nil {
		live.Close()
		return nil, nil, err
	}
	paths := make([]string, 0, len(after))
	for _, path := range after {
		if info, err := os.Stat(path); err == nil && os.SameFile(info, liveInfo) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, live, nil
}

func (r *segmentReader) readSegment(path string, since time.Time, out []timedEvent) ([]timedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	defer f.Close()
	return scanSegment(f, since, out)
}

func scanSegment(f io.Reader, since time.Time, out []timedEvent) ([]timedEvent, error) {
	br := bufio.NewReaderSize(f, 64*1024)
	for {
		line, readErr := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			e, ts, ok := decodeLine(line)
			switch {
			case !ok:
				metricMalformedLinesTotal.WithLabelValues(readerFull).Inc()
			case since.IsZero() || !ts.Before(since):
				out = append(out, timedEvent{event: e, at: ts})
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return out, nil
			}
			return nil, readErr
		}
	}
}

func (r *segmentReader) Tail(ctx context.Context, n int) ([]models.Event, error) {
	start := time.Now()
	defer func() {
		metricReadDurationSeconds.WithLabelValues(readerTail).Observe(time.Since(start).Seconds())
	}()

	events := make([]models.Event, 0, max(n, 0))
	if n <= 0 {
		return events, nil
	}

	f, err := os.Open(r.layout.LivePath())
	if err != nil {
		if os.IsNotExist(err) {
			return events, nil
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	offset := info.Size()
	block := make([]byte, tailBlockSize)
	var carry []byte

	for offset > 0 && len(events) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		size := int64(tailBlockSize)
		if offset < size {
			size = offset
		}
		offset -= size

		if _, err := f.ReadAt(block[:size], offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		chunk := make([]byte, 0, int(size)+len(carry))
		chunk = append(chunk, block[:size]...)
		chunk = append(chunk, carry...)

		lines := bytes.Split(chunk, []byte{'\n'})
		// The first piece may continue in the previous block.
		if offset > 0 {
			carry = lines[0]
			lines = lines[1:]
		} else {
			carry = nil
		}

		for i := len(lines) - 1; i >= 0 && len(events) < n; i-- {
			if len(bytes.TrimSpace(lines[i])) == 0 {
				continue
			}
			e, _, ok := decodeLine(lines[i])
			if !ok {
				metricMalformedLinesTotal.WithLabelValues(readerTail).Inc()
				continue
			}
			events = append(events, e)
		}
	}

	return events, nil
}
