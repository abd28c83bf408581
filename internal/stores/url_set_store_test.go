package stores

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/filestorages"
	"link-rotator/internal/shared/filestorages/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestFileStorage(t *testing.T) filestorages.FileStorage {
	t.Helper()
	fs, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestURLSetStore_PutGet_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewURLSetStore(newTestFileStorage(t))
	ctx := context.Background()

	set := &models.ActiveURLSet{
		URLs:        []string{"https://example.com", "https://example.com/blog"},
		UpdatedAt:   time.Date(2025, 12, 28, 18, 3, 45, 0, time.UTC),
		UpdatedFrom: "198.51.100.4",
	}
	require.NoError(t, store.Put(ctx, set))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.URLs, got.URLs)
	assert.True(t, set.UpdatedAt.Equal(got.UpdatedAt))
	assert.Equal(t, "198.51.100.4", got.UpdatedFrom)
}

func TestURLSetStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	store := NewURLSetStore(newTestFileStorage(t))

	got, err := store.Get(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrURLSetNotFound)
}

func TestURLSetStore_Put_Replaces(t *testing.T) {
	t.Parallel()

	store := NewURLSetStore(newTestFileStorage(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.ActiveURLSet{URLs: []string{"https://a.example"}}))
	require.NoError(t, store.Put(ctx, &models.ActiveURLSet{URLs: []string{"https://b.example"}}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b.example"}, got.URLs)
}

func TestURLSetStore_Put_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewURLSetStore(mockFileStorage)
	ctx := context.Background()

	mockFileStorage.EXPECT().
		Put(ctx, "urls.json", gomock.Any()).
		Return(nil, errors.New("storage error"))

	err := store.Put(ctx, &models.ActiveURLSet{URLs: []string{"https://a.example"}})
	assert.ErrorContains(t, err, "failed to put url set")
	assert.ErrorContains(t, err, "storage error")
}

func TestURLSetStore_Get_Corrupt(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewURLSetStore(mockFileStorage)
	ctx := context.Background()

	mockFileStorage.EXPECT().
		Get(ctx, "urls.json").
		Return(io.NopCloser(bytes.NewReader([]byte("{not json"))), nil)

	got, err := store.Get(ctx)
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "failed to unmarshal url set")
}

func TestURLSetStore_Put_WritesJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewURLSetStore(mockFileStorage)
	ctx := context.Background()

	mockFileStorage.EXPECT().
		Put(ctx, "urls.json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader) (*filestorages.PutResult, error) {
			var got models.ActiveURLSet
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, []string{"https://a.example"}, got.URLs)
			return &filestorages.PutResult{FileKey: key}, nil
		})

	require.NoError(t, store.Put(ctx, &models.ActiveURLSet{URLs: []string{"https://a.example"}}))
}
