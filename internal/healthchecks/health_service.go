package healthchecks

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/stores"
)

const (
	Version = "1.0.0"

	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"

	checkOK           = "ok"
	checkMissing      = "missing"
	checkNotWritable  = "not_writable"
	checkNotFound     = "not_found"
	checkUnreadable   = "unreadable"
	checkUsingDefault = "using_default"

	serverTimeLayout = "2006-01-02 15:04:05"
)

// Checks reports each probe as "ok" or a short failure word.
type Checks struct {
	Config          string `json:"config"`
	DataDirectory   string `json:"data_directory"`
	LogsDirectory   string `json:"logs_directory"`
	URLsFile        string `json:"urls_file"`
	TokenConfigured string `json:"token_configured"`
}

type HealthStats struct {
	ActiveURLs     int     `json:"active_urls"`
	LastURLsUpdate *string `json:"last_urls_update"`
}

// HealthReport is the body of the health endpoint.
//
// Example JSON:
//
//	{
//	  "status": "healthy",
//	  "timestamp": "2025-12-28T19:03:45+01:00",
//	  "version": "1.0.0",
//	  "checks": {
//	    "config": "ok",
//	    "data_directory": "ok",
//	    "logs_directory": "ok",
//	    "urls_file": "not_found",
//	    "token_configured": "using_default"
//	  },
//	  "stats": {"active_urls": 0, "last_urls_update": null},
//	  "go_version": "go1.24.0",
//	  "server_time": "2025-12-28 19:03:45"
//	}
type HealthReport struct {
	Status     string      `json:"status"`
	Timestamp  string      `json:"timestamp"`
	Version    string      `json:"version"`
	Checks     Checks      `json:"checks"`
	Stats      HealthStats `json:"stats"`
	GoVersion  string      `json:"go_version"`
	ServerTime string      `json:"server_time"`
}

// IsHealthy reports whether the configuration and both directories passed.
// The URL file and the token only inform.
func (r *HealthReport) IsHealthy() bool {
	return r.Status == StatusHealthy
}

//go:generate mockgen -source=health_service.go -destination=./mocks/health_service_mock.go -package=mocks
type HealthService interface {
	Check(ctx context.Context) *HealthReport
}

type healthService struct {
	configPath   string
	dataDir      string
	logsDir      string
	tokenIsDummy bool
	urlSetStore  stores.URLSetStore
	location     *time.Location
	now          func() time.Time
}

type HealthServiceDeps struct {
	ConfigPath string
	DataDir    string
	LogsDir    string
	// UsingDefaultToken is true while the shipped placeholder token is active.
	UsingDefaultToken bool
	URLSetStore       stores.URLSetStore
	Location          *time.Location
	Now               func() time.Time
}

func NewHealthService(deps HealthServiceDeps) HealthService {
	s := &healthService{
		configPath:   deps.ConfigPath,
		dataDir:      deps.DataDir,
		logsDir:      deps.LogsDir,
		tokenIsDummy: deps.UsingDefaultToken,
		urlSetStore:  deps.URLSetStore,
		location:     deps.Location,
		now:          deps.Now,
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *healthService) Check(ctx context.Context) *HealthReport {
	now := s.now().In(s.location)

	report := &HealthReport{
		Timestamp:  now.Format(time.RFC3339),
		Version:    Version,
		GoVersion:  runtime.Version(),
		ServerTime: now.Format(serverTimeLayout),
		Checks: Checks{
			Config:          checkOK,
			DataDirectory:   checkOK,
			LogsDirectory:   checkOK,
			TokenConfigured: checkOK,
		},
	}

	if !fileExists(s.configPath) {
		report.Checks.Config = checkMissing
	}
	if !isWritableDir(s.dataDir) {
		report.Checks.DataDirectory = checkNotWritable
	}
	if !isWritableDir(s.logsDir) {
		report.Checks.LogsDirectory = checkNotWritable
	}
	if s.tokenIsDummy {
		report.Checks.TokenConfigured = checkUsingDefault
	}

	report.Checks.URLsFile, report.Stats = s.urlSetStats(ctx)

	report.Status = StatusHealthy
	if report.Checks.Config != checkOK || report.Checks.DataDirectory != checkOK || report.Checks.LogsDirectory != checkOK {
		report.Status = StatusDegraded
		loggers.Ctx(ctx).Warn().
			Str("config", report.Checks.Config).
			Str("data_directory", report.Checks.DataDirectory).
			Str("logs_directory", report.Checks.LogsDirectory).
			Msg("health check degraded")
	}
	return report
}

func (s *healthService) urlSetStats(ctx context.Context) (string, HealthStats) {
	set, err := s.urlSetStore.Get(ctx)
	if errors.Is(err, stores.ErrURLSetNotFound) {
		return checkNotFound, HealthStats{}
	}
	if err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("health check could not read url set")
		return checkUnreadable, HealthStats{}
	}

	stats := HealthStats{ActiveURLs: len(set.URLs)}
	if !set.UpdatedAt.IsZero() {
		updated := set.UpdatedAt.In(s.location).Format(time.RFC3339)
		stats.LastURLsUpdate = &updated
	}
	return checkOK, stats
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isWritableDir probes by creating and removing a temp file, which also
// catches read-only mounts that permission bits do not reveal.
func isWritableDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	probe, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
