package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBaseConfig = `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
rotator:
  token: s3cret
  timezone: Europe/Paris
  fallback_urls:
    - https://example.com
    - https://example.com/blog
storage:
  data_dir: ./data
  logs_dir: ./logs
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, validBaseConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "s3cret", cfg.Rotator.Token)
	assert.Equal(t, "Europe/Paris", cfg.Rotator.Timezone)
	assert.Equal(t, []string{"https://example.com", "https://example.com/blog"}, cfg.Rotator.FallbackURLs)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, "./logs", cfg.Storage.LogsDir)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, validBaseConfig))
	require.NoError(t, err)

	assert.True(t, cfg.EventLog.Enabled)
	assert.Equal(t, "redirections.log", cfg.EventLog.FileName)
	assert.Equal(t, int64(1<<30), cfg.EventLog.MaxSizeBytes)
	assert.Equal(t, "sync", cfg.EventLog.SinkMode)
	assert.Equal(t, 10, cfg.EventLog.RecentSampleSize)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.False(t, cfg.Geo.Enabled)
	assert.Equal(t, 2000, cfg.Geo.TimeoutMs)
	assert.Equal(t, 24, cfg.Geo.CacheTTLHours)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvFallbackURLs, "https://a.example, https://b.example")

	cfg, err := LoadConfig(writeTempConfig(t, validBaseConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Rotator.Token)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Rotator.FallbackURLs)
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	invalidConfig := `server:
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
rotator:
  fallback_urls: [https://example.com]
storage:
  data_dir: ./data
  logs_dir: ./logs
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: invalid
rotator:
  fallback_urls: [https://example.com]
storage:
  data_dir: ./data
  logs_dir: ./logs
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "invalid", cfg.Log.Level)
}

func TestLoadConfig_InvalidPortRange(t *testing.T) {
	invalidConfig := `server:
  port: 70000
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: info
rotator:
  fallback_urls: [https://example.com]
storage:
  data_dir: ./data
  logs_dir: ./logs
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_MissingDataDir(t *testing.T) {
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: info
rotator:
  fallback_urls: [https://example.com]
storage:
  logs_dir: ./logs
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "storage.datadir")
}

func TestLoadConfig_InvalidFallbackURL(t *testing.T) {
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: info
rotator:
  fallback_urls: [ftp://example.com]
storage:
  data_dir: ./data
  logs_dir: ./logs
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rotator.fallbackurls")
}

func TestLoadConfig_InvalidSinkMode(t *testing.T) {
	invalidConfig := validBaseConfig + `event_log:
  sink_mode: kafka
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "eventlog.sinkmode (oneof=sync async)")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/configs.yml")
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to read config file")
}
