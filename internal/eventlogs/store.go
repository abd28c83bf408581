package eventlogs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/metrics"

	"github.com/gofrs/flock"
)

const (
	DefaultMaxSegmentBytes int64 = 1 << 30

	lockRetryDelay = 5 * time.Millisecond
	// maxRotationSeq bounds the search for a free rotated name within one second.
	maxRotationSeq = 1000
)

var ErrLockNotAcquired = errors.New("event log lock not acquired")

// EventStore appends redirect events to the live segment, rotating it once it
// grows past the configured size.
//
//go:generate mockgen -source=store.go -destination=./mocks/store_mock.go -package=mocks
type EventStore interface {
	Append(ctx context.Context, event models.Event) error
}

type segmentStore struct {
	layout   Layout
	maxBytes int64
	now      func() time.Time

	// mu serializes appends within the process, the flock across processes.
	mu   sync.Mutex
	lock *flock.Flock
}

type StoreOption func(*segmentStore)

// WithClock overrides the clock used to stamp rotated segments.
func WithClock(now func() time.Time) StoreOption {
	return func(s *segmentStore) {
		s.now = now
	}
}

func NewEventStore(layout Layout, maxBytes int64, opts ...StoreOption) EventStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSegmentBytes
	}
	s := &segmentStore{
		layout:   layout,
		maxBytes: maxBytes,
		now:      time.Now,
		lock:     flock.New(layout.LockPath()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *segmentStore) Append(ctx context.Context, event models.Event) error {
	line, err := encodeLine(event)
	if err != nil {
		metricEventAppendedTotal.WithLabelValues(appendErrEncode).Inc()
		return fmt.Errorf("encode event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.layout.Dir, 0755); err != nil {
		metricEventAppendedTotal.WithLabelValues(appendErrWrite).Inc()
		return fmt.Errorf("create log directory: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		metricEventAppendedTotal.WithLabelValues(appendErrLock).Inc()
		if err == nil {
			err = ErrLockNotAcquired
		}
		return fmt.Errorf("lock event log: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := s.rotateIfOversized(); err != nil {
		metricSegmentRotationsTotal.WithLabelValues(appendErrRotate).Inc()
		metricEventAppendedTotal.WithLabelValues(appendErrRotate).Inc()
		return fmt.Errorf("rotate event log: %w", err)
	}

	if err := s.write(line); err != nil {
		metricEventAppendedTotal.WithLabelValues(appendErrWrite).Inc()
		return fmt.Errorf("write event: %w", err)
	}

	metricEventAppendedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

// rotateIfOversized must be called with both locks held.
func (s *segmentStore) rotateIfOversized() error {
	live := s.layout.LivePath()
	info, err := os.Stat(live)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() <= s.maxBytes {
		return nil
	}

	now := s.now()
	for seq := 0; seq < maxRotationSeq; seq++ {
		target := s.layout.rotatedName(now, seq)
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := os.Rename(live, target); err != nil {
			return err
		}
		metricSegmentRotationsTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return nil
	}
	return fmt.Errorf("no free rotated segment name for %s", now.UTC().Format(rotationStampFmt))
}

func (s *segmentStore) write(line []byte) error {
	f, err := os.OpenFile(s.layout.LivePath(), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
