package updaters

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"link-rotator/internal/models"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/metrics"
	"link-rotator/internal/shared/svcerrors"
	"link-rotator/internal/shared/validators"
	"link-rotator/internal/stores"

	"github.com/goccy/go-json"
)

const (
	maxBodyBytes = 1 << 20

	reasonNotString  = "must be a string"
	reasonInvalidURL = "invalid URL format"

	urlRules = "required,http_url," + validators.TagSafeRedirect
)

// UpdateRequest is what the update endpoint hands over from the HTTP request.
type UpdateRequest struct {
	Method     string
	Token      string
	RemoteAddr string
	Body       io.Reader
}

// InvalidURL is one rejected entry. URL keeps the submitted value as is, so
// it may be a number, object or null when the entry was not a string.
type InvalidURL struct {
	URL    any    `json:"url"`
	Reason string `json:"reason"`
}

type UpdateWarnings struct {
	InvalidURLs []InvalidURL `json:"invalid_urls"`
}

// UpdateResult is the success body of the update endpoint.
//
// Example JSON:
//
//	{
//	  "success": true,
//	  "message": "URLs updated successfully",
//	  "urls_count": 2,
//	  "updated_at": "2025-12-28T19:03:45+01:00",
//	  "warnings": {"invalid_urls": [{"url": "ftp://x", "reason": "invalid URL format"}]}
//	}
type UpdateResult struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	URLsCount int             `json:"urls_count"`
	UpdatedAt string          `json:"updated_at"`
	Warnings  *UpdateWarnings `json:"warnings,omitempty"`
}

//go:generate mockgen -source=update_service.go -destination=./mocks/update_service_mock.go -package=mocks
type UpdateService interface {
	// UpdateURLs checks method, token, rate limit and body in that order and
	// replaces the active URL set with the valid, deduplicated entries.
	UpdateURLs(ctx context.Context, req UpdateRequest) (*UpdateResult, error)
}

type updateService struct {
	token          string
	urlSetStore    stores.URLSetStore
	rateLimitStore stores.RateLimitStore
	validate       *validators.Validate
	location       *time.Location
	now            func() time.Time
}

type UpdateServiceDeps struct {
	Token          string
	URLSetStore    stores.URLSetStore
	RateLimitStore stores.RateLimitStore
	Location       *time.Location
	Now            func() time.Time
}

func NewUpdateService(deps UpdateServiceDeps) UpdateService {
	s := &updateService{
		token:          deps.Token,
		urlSetStore:    deps.URLSetStore,
		rateLimitStore: deps.RateLimitStore,
		validate:       validators.New(),
		location:       deps.Location,
		now:            deps.Now,
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *updateService) UpdateURLs(ctx context.Context, req UpdateRequest) (*UpdateResult, error) {
	result, svcErr := s.updateURLs(ctx, req)
	if svcErr != nil {
		metricURLUpdatesTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	metricURLUpdatesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (s *updateService) updateURLs(ctx context.Context, req UpdateRequest) (*UpdateResult, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	if req.Method != http.MethodPost {
		return nil, errMethodNotAllowed(req.Method)
	}

	if !s.authorized(req.Token) {
		logger.Warn().Str(loggers.FieldClientIP, req.RemoteAddr).Msg("rejected url update with bad token")
		return nil, errUnauthenticated()
	}

	now := s.now()
	allowed, err := s.rateLimitStore.Allow(ctx, now)
	if err != nil {
		// A broken limiter fails open.
		logger.Warn().Err(err).Msg("rate limit check failed, allowing request")
		allowed = true
	}
	if !allowed {
		return nil, errRateLimited()
	}

	raw, svcErr := s.readBody(req.Body)
	if svcErr != nil {
		return nil, svcErr
	}

	valid, invalid := s.partition(raw)
	metricRejectedURLsTotal.WithLabelValues().Add(float64(len(invalid)))
	if len(valid) == 0 {
		return nil, errNoValidURL(invalid)
	}

	updatedAt := now.In(s.location)
	set := &models.ActiveURLSet{
		URLs:        valid,
		UpdatedAt:   updatedAt,
		UpdatedFrom: req.RemoteAddr,
	}
	if err := s.urlSetStore.Put(ctx, set); err != nil {
		return nil, errInternalURLSetStoreFailed(err)
	}
	metricActiveURLs.WithLabelValues().Set(float64(len(valid)))

	logger.Info().
		Int(loggers.FieldURLCount, len(valid)).
		Int("rejected_count", len(invalid)).
		Str(loggers.FieldClientIP, req.RemoteAddr).
		Msg("active url set updated")

	result := &UpdateResult{
		Success:   true,
		Message:   "URLs updated successfully",
		URLsCount: len(valid),
		UpdatedAt: updatedAt.Format(time.RFC3339),
	}
	if len(invalid) > 0 {
		result.Warnings = &UpdateWarnings{InvalidURLs: invalid}
	}
	return result, nil
}

func (s *updateService) authorized(presented string) bool {
	if presented == "" || s.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.token)) == 1
}

// readBody returns the raw "urls" entries of the request body.
func (s *updateService) readBody(r io.Reader) ([]any, *svcerrors.ServiceError) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > maxBodyBytes {
		return nil, errValidationFailed(fmt.Sprintf("request body too large: must be <= %d bytes", maxBodyBytes), nil)
	}

	var body map[string]any
	if err := json.Unmarshal(buf, &body); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	urls, ok := body["urls"].([]any)
	if !ok {
		return nil, errValidationFailed(`field "urls" is required and must be an array`, nil)
	}
	return urls, nil
}

// partition splits entries into unique valid URLs, in submission order, and
// rejected ones. Blank strings are ignored.
func (s *updateService) partition(raw []any) ([]string, []InvalidURL) {
	valid := make([]string, 0, len(raw))
	invalid := make([]InvalidURL, 0)
	seen := make(map[string]struct{}, len(raw))

	for _, entry := range raw {
		str, ok := entry.(string)
		if !ok {
			invalid = append(invalid, InvalidURL{URL: entry, Reason: reasonNotString})
			continue
		}

		str = strings.TrimSpace(str)
		if str == "" {
			continue
		}

		if err := s.validate.Var(str, urlRules); err != nil {
			invalid = append(invalid, InvalidURL{URL: str, Reason: reasonInvalidURL})
			continue
		}

		if _, dup := seen[str]; dup {
			continue
		}
		seen[str] = struct{}{}
		valid = append(valid, str)
	}
	return valid, invalid
}
