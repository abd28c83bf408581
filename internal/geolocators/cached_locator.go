package geolocators

import (
	"context"
	"errors"
	"time"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/stores"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL         = 24 * time.Hour
	DefaultMemoryCacheItems = 10000
)

type CacheOptions struct {
	TTL              time.Duration
	MemoryCacheItems int64
	Now              func() time.Time
}

// cachedLocator layers an in-process cache and the persisted geo cache in
// front of an upstream Locator. Concurrent lookups for one IP share a single
// upstream call. Only successful lookups are cached.
type cachedLocator struct {
	upstream Locator
	store    stores.GeoCacheStore
	memory   *ristretto.Cache
	group    singleflight.Group
	ttl      time.Duration
	now      func() time.Time
}

func NewCachedLocator(upstream Locator, store stores.GeoCacheStore, opts CacheOptions) (Locator, error) {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.MemoryCacheItems <= 0 {
		opts.MemoryCacheItems = DefaultMemoryCacheItems
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	memory, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: opts.MemoryCacheItems * 10,
		MaxCost:     opts.MemoryCacheItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &cachedLocator{
		upstream: upstream,
		store:    store,
		memory:   memory,
		ttl:      opts.TTL,
		now:      opts.Now,
	}, nil
}

func (l *cachedLocator) Locate(ctx context.Context, ip string) (models.Location, bool) {
	if !isLocatable(ip) {
		metricGeoLookupsTotal.WithLabelValues(sourceSkipped).Inc()
		return models.Location{}, false
	}

	if cached, ok := l.memory.Get(ip); ok {
		metricGeoLookupsTotal.WithLabelValues(sourceMemory).Inc()
		return cached.(models.Location), true
	}

	if loc, ok := l.fromStore(ctx, ip); ok {
		metricGeoLookupsTotal.WithLabelValues(sourceFile).Inc()
		return loc, true
	}

	// The shared call must not die with whichever request started it.
	shared := context.WithoutCancel(ctx)
	v, _, _ := l.group.Do(ip, func() (any, error) {
		loc, ok := l.upstream.Locate(shared, ip)
		if !ok {
			return nil, nil
		}
		l.remember(shared, ip, loc)
		return loc, nil
	})

	loc, ok := v.(models.Location)
	if !ok {
		metricGeoLookupsTotal.WithLabelValues(sourceFailed).Inc()
		return models.Location{}, false
	}
	metricGeoLookupsTotal.WithLabelValues(sourceAPI).Inc()
	return loc, true
}

func (l *cachedLocator) fromStore(ctx context.Context, ip string) (models.Location, bool) {
	entry, err := l.store.Get(ctx, ip)
	if err != nil {
		if !errors.Is(err, stores.ErrGeoCacheMiss) {
			loggers.Ctx(ctx).Debug().Err(err).Msg("geo cache read failed")
		}
		return models.Location{}, false
	}
	if !entry.IsFresh(l.now(), l.ttl) {
		return models.Location{}, false
	}

	remaining := l.ttl - l.now().Sub(entry.FetchedAt)
	l.memory.SetWithTTL(ip, entry.Location, 1, remaining)
	return entry.Location, true
}

func (l *cachedLocator) remember(ctx context.Context, ip string, loc models.Location) {
	l.memory.SetWithTTL(ip, loc, 1, l.ttl)

	entry := &models.GeoCacheEntry{Location: loc, FetchedAt: l.now().UTC()}
	if err := l.store.Put(ctx, ip, entry); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("geo cache write failed")
	}
}

func (l *cachedLocator) Close() {
	l.memory.Close()
	l.upstream.Close()
}
