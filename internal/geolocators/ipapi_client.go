package geolocators

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/loggers"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint          = "http://ip-api.com/json"
	DefaultTimeout           = 2 * time.Second
	DefaultRequestsPerMinute = 40

	ipAPIFields   = "status,message,country,countryCode,city,region"
	maxReplyBytes = 16 << 10
)

// ipAPIResponse is the subset of the ip-api.com JSON reply we request.
//
// Example JSON:
//
//	{"status":"success","country":"France","countryCode":"FR","city":"Paris","region":"IDF"}
type ipAPIResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

type ipAPIClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type IPAPIOptions struct {
	Endpoint          string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
}

// NewIPAPILocator queries an ip-api.com compatible endpoint. Calls beyond the
// per-minute budget are refused at once instead of queueing behind the limiter.
func NewIPAPILocator(opts IPAPIOptions) Locator {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = DefaultRequestsPerMinute
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &ipAPIClient{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute),
	}
}

func (c *ipAPIClient) Locate(ctx context.Context, ip string) (models.Location, bool) {
	if !c.limiter.Allow() {
		metricGeoLookupsTotal.WithLabelValues(sourceThrottled).Inc()
		loggers.Ctx(ctx).Debug().Str(loggers.FieldClientIP, ip).Msg("geolocation budget exhausted")
		return models.Location{}, false
	}

	start := time.Now()
	reply, err := c.fetch(ctx, ip)
	if err != nil {
		metricGeoAPIDuration.WithLabelValues(apiOutcomeError).Observe(time.Since(start).Seconds())
		loggers.Ctx(ctx).Debug().Err(err).Str(loggers.FieldClientIP, ip).Msg("geolocation lookup failed")
		return models.Location{}, false
	}
	if reply.Status != "success" || reply.CountryCode == "" {
		metricGeoAPIDuration.WithLabelValues(apiOutcomeFail).Observe(time.Since(start).Seconds())
		loggers.Ctx(ctx).Debug().Str(loggers.FieldClientIP, ip).Str("reason", reply.Message).Msg("geolocation lookup rejected")
		return models.Location{}, false
	}
	metricGeoAPIDuration.WithLabelValues(apiOutcomeSuccess).Observe(time.Since(start).Seconds())

	return models.Location{
		CountryCode: strings.ToUpper(reply.CountryCode),
		Country:     reply.Country,
		City:        reply.City,
		Region:      reply.Region,
	}, true
}

func (c *ipAPIClient) fetch(ctx context.Context, ip string) (*ipAPIResponse, error) {
	target := fmt.Sprintf("%s/%s?fields=%s", c.endpoint, url.PathEscape(ip), ipAPIFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var reply ipAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	return &reply, nil
}

func (c *ipAPIClient) Close() {
	c.httpClient.CloseIdleConnections()
}
