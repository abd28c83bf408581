package configs

import (
	"fmt"
	"strings"

	"link-rotator/internal/shared/validators"

	"github.com/spf13/viper"
)

const (
	// DefaultToken is the placeholder secret shipped with the sample config.
	// The health report flags it as "using_default".
	DefaultToken = "change_me_in_production"

	EnvToken        = "ROTATOR_TOKEN"
	EnvFallbackURLs = "ROTATOR_FALLBACK_URLS"
)

// setDefaults registers values that are sensible for every deployment.
// Server and storage directories are intentionally left without defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("rotator.token", DefaultToken)
	v.SetDefault("rotator.timezone", "UTC")

	v.SetDefault("event_log.enabled", true)
	v.SetDefault("event_log.file_name", "redirections.log")
	v.SetDefault("event_log.max_size_bytes", int64(1<<30))
	v.SetDefault("event_log.sink_mode", "sync")
	v.SetDefault("event_log.append_timeout_ms", 500)
	v.SetDefault("event_log.queue_buffer", 1024)
	v.SetDefault("event_log.queue_partitions", 1)
	v.SetDefault("event_log.chronological_read", false)
	v.SetDefault("event_log.recent_sample_size", 10)

	v.SetDefault("rate_limit.max_requests", 10)
	v.SetDefault("rate_limit.window_seconds", 60)

	v.SetDefault("geo.enabled", false)
	v.SetDefault("geo.endpoint", "http://ip-api.com/json")
	v.SetDefault("geo.timeout_ms", 2000)
	v.SetDefault("geo.cache_ttl_hours", 24)
	v.SetDefault("geo.requests_per_minute", 40)
	v.SetDefault("geo.memory_cache_items", 10000)
}

// LoadConfig reads configuration from file and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// Secrets and the fallback list may come from the environment
	if err := v.BindEnv("rotator.token", EnvToken); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvToken, err)
	}
	if err := v.BindEnv("rotator.fallback_urls", EnvFallbackURLs); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvFallbackURLs, err)
	}

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Rotator.FallbackURLs = splitURLList(cfg.Rotator.FallbackURLs)

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// splitURLList flattens comma separated entries. An env var arrives as a
// single element, a YAML list as many.
func splitURLList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
