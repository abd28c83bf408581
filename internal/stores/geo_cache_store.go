package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/filestorages"
	"link-rotator/internal/shared/fingerprints"

	"github.com/goccy/go-json"
)

var (
	ErrGeoCacheMiss = errors.New("geo cache miss")
)

// GeoCacheStore persists geolocation lookups keyed by the IP fingerprint.
// Freshness is decided by the caller from the stored FetchedAt.
//
//go:generate mockgen -source=geo_cache_store.go -destination=./mocks/geo_cache_store_mock.go -package=mocks
type GeoCacheStore interface {
	Get(ctx context.Context, ip string) (*models.GeoCacheEntry, error)
	Put(ctx context.Context, ip string, entry *models.GeoCacheEntry) error
}

type geoCacheStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewGeoCacheStore(fileStorage filestorages.FileStorage) GeoCacheStore {
	return &geoCacheStore{fileStorage: fileStorage, dir: "geo_cache"}
}

func (s *geoCacheStore) Get(ctx context.Context, ip string) (*models.GeoCacheEntry, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(ip))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrGeoCacheMiss
		}
		return nil, fmt.Errorf("failed to get geo cache entry: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read geo cache entry: %w", err)
	}
	var entry models.GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geo cache entry: %w", err)
	}
	return &entry, nil
}

func (s *geoCacheStore) Put(ctx context.Context, ip string, entry *models.GeoCacheEntry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache entry: %w", err)
	}
	if _, err := s.fileStorage.Put(ctx, s.getKey(ip), bytes.NewReader(jsonData)); err != nil {
		return fmt.Errorf("failed to put geo cache entry: %w", err)
	}
	return nil
}

func (s *geoCacheStore) getKey(ip string) string {
	return fmt.Sprintf("%s/%s.json", s.dir, fingerprints.IP(ip))
}
