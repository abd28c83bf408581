package aggregators

import (
	"context"
	"time"

	"link-rotator/internal/classifiers"
	"link-rotator/internal/eventlogs"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/metrics"
)

const (
	MinRecentLogsLimit     = 5
	MaxRecentLogsLimit     = 50
	DefaultRecentLogsLimit = 20
)

// StatsService answers the analytics queries behind the stats endpoint.
//
//go:generate mockgen -source=stats_service.go -destination=./mocks/stats_service_mock.go -package=mocks
type StatsService interface {
	// Stats scans the window ending now and returns the full aggregate.
	Stats(ctx context.Context, period models.Period) (*models.StatsReport, error)
	// Summary returns only the total and the top url and country of the window.
	Summary(ctx context.Context, period models.Period) (*models.SummaryReport, error)
	// RecentLogs reads the tail of the live segment. limit is clamped to [5,50].
	RecentLogs(ctx context.Context, limit int) (*models.RecentLogsReport, error)
}

type statsService struct {
	reader     eventlogs.Reader
	aggregator Aggregator
	location   *time.Location
	now        func() time.Time
}

func NewStatsService(reader eventlogs.Reader, aggregator Aggregator, loc *time.Location, now func() time.Time) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &statsService{reader: reader, aggregator: aggregator, location: loc, now: now}
}

func (s *statsService) Stats(ctx context.Context, period models.Period) (*models.StatsReport, error) {
	now := s.now().In(s.location)
	result, err := s.aggregate(ctx, period, now, formatJSON)
	if err != nil {
		return nil, err
	}

	return &models.StatsReport{
		Success:     true,
		Period:      period,
		GeneratedAt: now,
		Stats:       models.NewStats(result),
	}, nil
}

func (s *statsService) Summary(ctx context.Context, period models.Period) (*models.SummaryReport, error) {
	now := s.now().In(s.location)
	result, err := s.aggregate(ctx, period, now, formatSummary)
	if err != nil {
		return nil, err
	}

	return &models.SummaryReport{
		Success:     true,
		Period:      period,
		TotalClicks: result.TotalEvents,
		TopURL:      result.URLs.Top(),
		TopCountry:  result.Countries.Top(),
	}, nil
}

func (s *statsService) RecentLogs(ctx context.Context, limit int) (*models.RecentLogsReport, error) {
	limit = ClampRecentLogsLimit(limit)

	events, err := s.reader.Tail(ctx, limit)
	if err != nil {
		svcErr := errInternalEventLogTailFailed(err)
		metricStatsQueriesTotal.WithLabelValues("", formatLogs, svcErr.Code).Inc()
		return nil, svcErr
	}

	logs := make([]models.RecentLog, 0, len(events))
	for _, e := range events {
		c := classifiers.Classify(e.UserAgent)
		logs = append(logs, models.RecentLog{
			Timestamp: e.Timestamp,
			URL:       e.URL,
			IP:        e.IP,
			Country:   e.CountryOrUnknown(),
			City:      e.City,
			Referer:   e.Referer,
			Device:    string(c.Device),
			Browser:   string(c.Browser),
			OS:        string(c.OS),
		})
	}

	metricStatsQueriesTotal.WithLabelValues("", formatLogs, metrics.ValueNoError).Inc()
	return &models.RecentLogsReport{
		Success:     true,
		GeneratedAt: s.now().In(s.location),
		Count:       len(logs),
		Logs:        logs,
	}, nil
}

func (s *statsService) aggregate(ctx context.Context, period models.Period, now time.Time, format string) (*models.AggregateResult, error) {
	logger := loggers.Ctx(ctx)
	since := period.Since(now)
	logger.Debug().Str(loggers.FieldPeriod, string(period)).Msgf("started aggregating events since %s", since.Format(time.RFC3339))

	events, err := s.reader.Read(ctx, since)
	if err != nil {
		svcErr := errInternalEventLogReadFailed(err)
		metricStatsQueriesTotal.WithLabelValues(string(period), format, svcErr.Code).Inc()
		return nil, svcErr
	}
	metricEventsScanned.WithLabelValues(string(period)).Observe(float64(len(events)))

	result := s.aggregator.Aggregate(events)
	metricStatsQueriesTotal.WithLabelValues(string(period), format, metrics.ValueNoError).Inc()
	return result, nil
}

// ClampRecentLogsLimit bounds a requested limit to [5,50].
func ClampRecentLogsLimit(limit int) int {
	return min(MaxRecentLogsLimit, max(MinRecentLogsLimit, limit))
}
