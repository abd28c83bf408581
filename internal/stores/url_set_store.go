package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/filestorages"

	"github.com/goccy/go-json"
)

var (
	ErrURLSetNotFound = errors.New("active url set not found")
)

//go:generate mockgen -source=url_set_store.go -destination=./mocks/url_set_store_mock.go -package=mocks
type URLSetStore interface {
	// Get returns ErrURLSetNotFound when no set was ever saved.
	Get(ctx context.Context) (*models.ActiveURLSet, error)
	Put(ctx context.Context, set *models.ActiveURLSet) error
}

type urlSetStore struct {
	fileStorage filestorages.FileStorage
	key         string

	// mu orders writers; readers rely on the atomic rename.
	mu sync.Mutex
}

const urlSetKey = "urls.json"

func NewURLSetStore(fileStorage filestorages.FileStorage) URLSetStore {
	return &urlSetStore{fileStorage: fileStorage, key: urlSetKey}
}

func (s *urlSetStore) Get(ctx context.Context) (*models.ActiveURLSet, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrURLSetNotFound
		}
		return nil, fmt.Errorf("failed to get url set: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read url set: %w", err)
	}
	var set models.ActiveURLSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal url set: %w", err)
	}
	return &set, nil
}

func (s *urlSetStore) Put(ctx context.Context, set *models.ActiveURLSet) error {
	jsonData, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal url set: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData)); err != nil {
		return fmt.Errorf("failed to put url set: %w", err)
	}
	return nil
}
