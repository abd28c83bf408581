package rotators

import (
	"context"
	"errors"
	"strings"
	"time"

	"link-rotator/internal/geolocators"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/metrics"
	"link-rotator/internal/stores"
	"link-rotator/internal/streams"
)

// Visitor is what the redirect endpoint knows about the caller.
type Visitor struct {
	IP        string
	UserAgent string
	Referer   string
	// CountryHint is a country code supplied by a fronting proxy, if any.
	CountryHint string
}

// Decision is the outcome of one redirect.
type Decision struct {
	URL          string
	Event        models.Event
	UsedFallback bool
}

//go:generate mockgen -source=redirect_service.go -destination=./mocks/redirect_service_mock.go -package=mocks
type RedirectService interface {
	// Redirect picks a destination and records the event. Event recording
	// failures are logged and never returned.
	Redirect(ctx context.Context, visitor Visitor) (*Decision, error)
}

type redirectService struct {
	urlSetStore  stores.URLSetStore
	fallbackURLs []string
	picker       Picker
	locator      geolocators.Locator
	sink         streams.EventSink
	location     *time.Location
	now          func() time.Time
}

type RedirectServiceDeps struct {
	URLSetStore  stores.URLSetStore
	FallbackURLs []string
	Picker       Picker
	Locator      geolocators.Locator
	Sink         streams.EventSink
	Location     *time.Location
	Now          func() time.Time
}

func NewRedirectService(deps RedirectServiceDeps) RedirectService {
	s := &redirectService{
		urlSetStore:  deps.URLSetStore,
		fallbackURLs: deps.FallbackURLs,
		picker:       deps.Picker,
		locator:      deps.Locator,
		sink:         deps.Sink,
		location:     deps.Location,
		now:          deps.Now,
	}
	if s.picker == nil {
		s.picker = NewPicker()
	}
	if s.locator == nil {
		s.locator = geolocators.NewNoopLocator()
	}
	if s.sink == nil {
		s.sink = streams.NewNoopEventSink()
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *redirectService) Redirect(ctx context.Context, visitor Visitor) (*Decision, error) {
	logger := loggers.Ctx(ctx)

	candidates, usedFallback := s.candidates(ctx)
	if len(candidates) == 0 {
		svcErr := errNoDestinationAvailable()
		metricRedirectsTotal.WithLabelValues(outcomeFailed, svcErr.Code).Inc()
		return nil, svcErr
	}

	url, err := s.picker.Pick(candidates)
	if err != nil {
		svcErr := errInternalPickFailed(err)
		logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msg("picker rejected candidate set")
		metricRedirectsTotal.WithLabelValues(outcomeFailed, svcErr.Code).Inc()
		return nil, svcErr
	}

	event := models.NewEvent(
		s.now().In(s.location),
		url,
		visitor.IP,
		visitor.UserAgent,
		visitor.Referer,
		s.locate(ctx, visitor),
	)

	if err := s.sink.Submit(ctx, event); err != nil {
		metricEventSinkFailuresTotal.WithLabelValues().Inc()
		logger.Error().Err(err).Str(loggers.FieldTargetURL, url).Msg("failed to record redirect event")
	}

	outcome := outcomeActiveSet
	if usedFallback {
		outcome = outcomeFallback
	}
	metricRedirectsTotal.WithLabelValues(outcome, metrics.ValueNoError).Inc()

	return &Decision{URL: url, Event: event, UsedFallback: usedFallback}, nil
}

// candidates returns the persisted active set, or the fallback when the set
// is missing, unreadable or empty.
func (s *redirectService) candidates(ctx context.Context) ([]string, bool) {
	logger := loggers.Ctx(ctx)

	set, err := s.urlSetStore.Get(ctx)
	switch {
	case errors.Is(err, stores.ErrURLSetNotFound):
		logger.Debug().Msg("no active URL set, using fallback")
	case err != nil:
		logger.Warn().Err(err).Msg("failed to load active URL set, using fallback")
	case !set.IsEmpty():
		return set.URLs, false
	}
	return s.fallbackURLs, true
}

// locate starts from the proxy supplied country and lets the geolocator
// override it when it knows better.
func (s *redirectService) locate(ctx context.Context, visitor Visitor) models.Location {
	loc := models.Location{CountryCode: models.UnknownCountry}
	if hint := strings.ToUpper(strings.TrimSpace(visitor.CountryHint)); hint != "" {
		loc.CountryCode = hint
	}

	found, ok := s.locator.Locate(ctx, visitor.IP)
	if !ok {
		return loc
	}
	if found.CountryCode != "" {
		loc.CountryCode = strings.ToUpper(found.CountryCode)
	}
	loc.Country = found.Country
	loc.City = found.City
	loc.Region = found.Region
	return loc
}
