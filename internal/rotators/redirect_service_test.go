package rotators

import (
	"context"
	"errors"
	"testing"
	"time"

	geomocks "link-rotator/internal/geolocators/mocks"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/svcerrors"
	"link-rotator/internal/stores"
	storemocks "link-rotator/internal/stores/mocks"
	streammocks "link-rotator/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 12, 28, 18, 3, 45, 0, time.UTC)

type redirectFixture struct {
	urlSets *storemocks.MockURLSetStore
	locator *geomocks.MockLocator
	sink    *streammocks.MockEventSink
	svc     RedirectService
}

func newRedirectFixture(t *testing.T, fallback []string) *redirectFixture {
	ctrl := gomock.NewController(t)
	f := &redirectFixture{
		urlSets: storemocks.NewMockURLSetStore(ctrl),
		locator: geomocks.NewMockLocator(ctrl),
		sink:    streammocks.NewMockEventSink(ctrl),
	}
	f.svc = NewRedirectService(RedirectServiceDeps{
		URLSetStore:  f.urlSets,
		FallbackURLs: fallback,
		Picker:       NewSeededPicker(7, 7),
		Locator:      f.locator,
		Sink:         f.sink,
		Location:     time.UTC,
		Now:          func() time.Time { return testNow },
	})
	return f
}

func TestRedirectService_Redirect_UsesActiveSet(t *testing.T) {
	t.Parallel()

	f := newRedirectFixture(t, []string{"https://fallback.example"})
	f.urlSets.EXPECT().Get(gomock.Any()).Return(&models.ActiveURLSet{URLs: []string{"https://active.example"}}, nil)
	f.locator.EXPECT().Locate(gomock.Any(), "203.0.113.7").Return(models.Location{CountryCode: "fr", City: "Paris"}, true)

	var submitted models.Event
	f.sink.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e models.Event) error {
		submitted = e
		return nil
	})

	decision, err := f.svc.Redirect(context.Background(), Visitor{
		IP:        "203.0.113.7",
		UserAgent: "curl/8.0",
		Referer:   "https://t.co/x",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://active.example", decision.URL)
	assert.False(t, decision.UsedFallback)
	assert.Equal(t, models.Event{
		Timestamp: "2025-12-28T18:03:45Z",
		URL:       "https://active.example",
		IP:        "203.0.113.7",
		UserAgent: "curl/8.0",
		Referer:   "https://t.co/x",
		Country:   "FR",
		City:      "Paris",
	}, submitted)
	assert.Equal(t, submitted, decision.Event)
}

func TestRedirectService_Redirect_FallbackWhenSetMissingOrEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  *models.ActiveURLSet
		err  error
	}{
		{name: "not found", err: stores.ErrURLSetNotFound},
		{name: "unreadable", err: errors.New("corrupt json")},
		{name: "empty", set: &models.ActiveURLSet{URLs: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newRedirectFixture(t, []string{"https://fallback.example"})
			f.urlSets.EXPECT().Get(gomock.Any()).Return(tt.set, tt.err)
			f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(models.Location{}, false)
			f.sink.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

			decision, err := f.svc.Redirect(context.Background(), Visitor{IP: "203.0.113.7"})
			require.NoError(t, err)
			assert.Equal(t, "https://fallback.example", decision.URL)
			assert.True(t, decision.UsedFallback)
			assert.Equal(t, models.UnknownCountry, decision.Event.Country)
		})
	}
}

func TestRedirectService_Redirect_NoDestination(t *testing.T) {
	t.Parallel()

	f := newRedirectFixture(t, nil)
	f.urlSets.EXPECT().Get(gomock.Any()).Return(nil, stores.ErrURLSetNotFound)

	_, err := f.svc.Redirect(context.Background(), Visitor{})
	require.Error(t, err)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeNoDestinationAvailable, svcErr.Code)
	assert.Equal(t, 503, svcErr.HttpStatusCode)
}

func TestRedirectService_Redirect_SinkFailureDoesNotFailRedirect(t *testing.T) {
	t.Parallel()

	f := newRedirectFixture(t, []string{"https://fallback.example"})
	f.urlSets.EXPECT().Get(gomock.Any()).Return(nil, stores.ErrURLSetNotFound)
	f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(models.Location{}, false)
	f.sink.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	decision, err := f.svc.Redirect(context.Background(), Visitor{})
	require.NoError(t, err)
	assert.Equal(t, "https://fallback.example", decision.URL)
}

func TestRedirectService_Redirect_CountryHint(t *testing.T) {
	t.Parallel()

	t.Run("hint used when lookup is unknown", func(t *testing.T) {
		t.Parallel()

		f := newRedirectFixture(t, []string{"https://fallback.example"})
		f.urlSets.EXPECT().Get(gomock.Any()).Return(nil, stores.ErrURLSetNotFound)
		f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(models.Location{}, false)
		f.sink.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

		decision, err := f.svc.Redirect(context.Background(), Visitor{CountryHint: "de"})
		require.NoError(t, err)
		assert.Equal(t, "DE", decision.Event.Country)
	})

	t.Run("lookup overrides hint", func(t *testing.T) {
		t.Parallel()

		f := newRedirectFixture(t, []string{"https://fallback.example"})
		f.urlSets.EXPECT().Get(gomock.Any()).Return(nil, stores.ErrURLSetNotFound)
		f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(models.Location{CountryCode: "US", City: "Austin"}, true)
		f.sink.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

		decision, err := f.svc.Redirect(context.Background(), Visitor{CountryHint: "DE"})
		require.NoError(t, err)
		assert.Equal(t, "US", decision.Event.Country)
		assert.Equal(t, "Austin", decision.Event.City)
	})
}
