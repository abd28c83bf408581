package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"link-rotator/internal/shared/filestorages"
	"link-rotator/internal/shared/loggers"

	"github.com/goccy/go-json"
)

// RateLimitStore is a sliding window limiter whose accepted request times
// survive restarts.
//
// The window is persisted as a JSON array of unix seconds:
//
//	[1766944800, 1766944811, 1766944822]
//
// Rejected requests are not recorded, so a client hammering the endpoint does
// not extend its own lockout.
//
//go:generate mockgen -source=rate_limit_store.go -destination=./mocks/rate_limit_store_mock.go -package=mocks
type RateLimitStore interface {
	// Allow prunes entries older than the window, rejects when the window
	// is full, and records now otherwise.
	Allow(ctx context.Context, now time.Time) (bool, error)
}

type rateLimitStore struct {
	fileStorage filestorages.FileStorage
	key         string
	maxRequests int
	window      time.Duration

	// mu guards the read-modify-write of the window file.
	mu sync.Mutex
}

const rateLimitKey = "rate_limit.json"

func NewRateLimitStore(fileStorage filestorages.FileStorage, maxRequests int, window time.Duration) RateLimitStore {
	return &rateLimitStore{
		fileStorage: fileStorage,
		key:         rateLimitKey,
		maxRequests: maxRequests,
		window:      window,
	}
}

func (s *rateLimitStore) Allow(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamps, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	nowUnix := now.Unix()
	windowSeconds := int64(s.window / time.Second)
	kept := stamps[:0]
	for _, ts := range stamps {
		if nowUnix-ts < windowSeconds {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= s.maxRequests {
		return false, nil
	}

	kept = append(kept, nowUnix)
	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *rateLimitStore) load(ctx context.Context) ([]int64, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rate limit window: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	var stamps []int64
	if err := json.Unmarshal(data, &stamps); err != nil {
		// An unreadable window starts over empty.
		loggers.Ctx(ctx).Warn().Err(err).Msg("discarding corrupt rate limit window")
		return nil, nil
	}
	return stamps, nil
}

func (s *rateLimitStore) save(ctx context.Context, stamps []int64) error {
	jsonData, err := json.Marshal(stamps)
	if err != nil {
		return fmt.Errorf("failed to marshal rate limit window: %w", err)
	}
	if _, err := s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData)); err != nil {
		return fmt.Errorf("failed to put rate limit window: %w", err)
	}
	return nil
}
