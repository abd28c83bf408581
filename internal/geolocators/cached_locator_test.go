package geolocators

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	geomocks "link-rotator/internal/geolocators/mocks"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/filestorages"
	"link-rotator/internal/stores"
	storemocks "link-rotator/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var paris = models.Location{CountryCode: "FR", Country: "France", City: "Paris", Region: "IDF"}

func newTestGeoStore(t *testing.T) stores.GeoCacheStore {
	t.Helper()
	fs, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return stores.NewGeoCacheStore(fs)
}

func TestCachedLocator_SkipsUnlocatable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	store := storemocks.NewMockGeoCacheStore(ctrl)

	locator, err := NewCachedLocator(upstream, store, CacheOptions{})
	require.NoError(t, err)

	for _, ip := range []string{"", "0.0.0.0", "127.0.0.1", "::1", "10.1.2.3", "192.168.0.4", "not-an-ip"} {
		_, ok := locator.Locate(context.Background(), ip)
		assert.False(t, ok, ip)
	}
}

func TestCachedLocator_UpstreamOnceThenCached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	upstream.EXPECT().Locate(gomock.Any(), "81.2.69.160").Return(paris, true).Times(1)

	locator, err := NewCachedLocator(upstream, newTestGeoStore(t), CacheOptions{})
	require.NoError(t, err)

	loc, ok := locator.Locate(context.Background(), "81.2.69.160")
	require.True(t, ok)
	assert.Equal(t, paris, loc)

	locator.(*cachedLocator).memory.Wait()

	loc, ok = locator.Locate(context.Background(), "81.2.69.160")
	require.True(t, ok)
	assert.Equal(t, paris, loc)
}

func TestCachedLocator_FreshFileEntry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	store := newTestGeoStore(t)
	now := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(context.Background(), "81.2.69.160", &models.GeoCacheEntry{
		Location:  paris,
		FetchedAt: now.Add(-23 * time.Hour),
	}))

	locator, err := NewCachedLocator(upstream, store, CacheOptions{Now: func() time.Time { return now }})
	require.NoError(t, err)

	loc, ok := locator.Locate(context.Background(), "81.2.69.160")
	require.True(t, ok)
	assert.Equal(t, paris, loc)
}

func TestCachedLocator_StaleFileEntryRefetched(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	store := newTestGeoStore(t)
	now := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(context.Background(), "81.2.69.160", &models.GeoCacheEntry{
		Location:  models.Location{CountryCode: "DE"},
		FetchedAt: now.Add(-25 * time.Hour),
	}))
	upstream.EXPECT().Locate(gomock.Any(), "81.2.69.160").Return(paris, true)

	locator, err := NewCachedLocator(upstream, store, CacheOptions{Now: func() time.Time { return now }})
	require.NoError(t, err)

	loc, ok := locator.Locate(context.Background(), "81.2.69.160")
	require.True(t, ok)
	assert.Equal(t, "FR", loc.CountryCode)

	entry, err := store.Get(context.Background(), "81.2.69.160")
	require.NoError(t, err)
	assert.Equal(t, paris, entry.Location)
	assert.True(t, entry.FetchedAt.Equal(now))
}

func TestCachedLocator_UpstreamFailureNotCached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	store := storemocks.NewMockGeoCacheStore(ctrl)

	store.EXPECT().Get(gomock.Any(), "81.2.69.160").Return(nil, stores.ErrGeoCacheMiss).Times(2)
	upstream.EXPECT().Locate(gomock.Any(), "81.2.69.160").Return(models.Location{}, false).Times(2)

	locator, err := NewCachedLocator(upstream, store, CacheOptions{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, ok := locator.Locate(context.Background(), "81.2.69.160")
		assert.False(t, ok)
	}
}

func TestCachedLocator_StoreWriteFailureStillAnswers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	store := storemocks.NewMockGeoCacheStore(ctrl)

	store.EXPECT().Get(gomock.Any(), "81.2.69.160").Return(nil, errors.New("disk"))
	store.EXPECT().Put(gomock.Any(), "81.2.69.160", gomock.Any()).Return(errors.New("disk"))
	upstream.EXPECT().Locate(gomock.Any(), "81.2.69.160").Return(paris, true)

	locator, err := NewCachedLocator(upstream, store, CacheOptions{})
	require.NoError(t, err)

	loc, ok := locator.Locate(context.Background(), "81.2.69.160")
	require.True(t, ok)
	assert.Equal(t, paris, loc)
}

func TestCachedLocator_ConcurrentLookupsShareUpstream(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	release := make(chan struct{})
	upstream.EXPECT().Locate(gomock.Any(), "81.2.69.160").DoAndReturn(func(context.Context, string) (models.Location, bool) {
		<-release
		return paris, true
	}).MinTimes(1).MaxTimes(2)

	locator, err := NewCachedLocator(upstream, newTestGeoStore(t), CacheOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loc, ok := locator.Locate(context.Background(), "81.2.69.160")
			assert.True(t, ok)
			assert.Equal(t, "FR", loc.CountryCode)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
}

func TestCachedLocator_Close(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	upstream := geomocks.NewMockLocator(ctrl)
	upstream.EXPECT().Close()

	locator, err := NewCachedLocator(upstream, newTestGeoStore(t), CacheOptions{})
	require.NoError(t, err)
	locator.Close()
}
