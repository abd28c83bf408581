package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Rotator   RotatorConfig   `mapstructure:"rotator" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	EventLog  EventLogConfig  `mapstructure:"event_log" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Geo       GeoConfig       `mapstructure:"geo"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// RotatorConfig holds the redirect decision configuration.
type RotatorConfig struct {
	// Token is the bearer secret expected by the URL update API.
	Token string `mapstructure:"token" validate:"required"`
	// FallbackURLs is used whenever the persisted URL set is absent or empty.
	FallbackURLs []string `mapstructure:"fallback_urls" validate:"required,min=1,dive,http_url"`
	Timezone     string   `mapstructure:"timezone" validate:"required,timezone"`
}

// StorageConfig holds the flat-file directories.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
	LogsDir string `mapstructure:"logs_dir" validate:"required"`
}

// EventLogConfig holds redirect event log configuration.
type EventLogConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	FileName          string `mapstructure:"file_name" validate:"required"`
	MaxSizeBytes      int64  `mapstructure:"max_size_bytes" validate:"required,min=1"`
	SinkMode          string `mapstructure:"sink_mode" validate:"required,oneof=sync async"`
	AppendTimeoutMs   int    `mapstructure:"append_timeout_ms" validate:"required,min=1"`
	QueueBuffer       int    `mapstructure:"queue_buffer" validate:"required,min=1"`
	QueuePartitions   int    `mapstructure:"queue_partitions" validate:"required,min=1,max=64"`
	ChronologicalRead bool   `mapstructure:"chronological_read"`
	RecentSampleSize  int    `mapstructure:"recent_sample_size" validate:"required,min=1,max=50"`
}

// RateLimitConfig holds the sliding window applied to the URL update API.
type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" validate:"required,min=1"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"required,min=1"`
}

// GeoConfig holds IP geolocation configuration.
type GeoConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Endpoint          string `mapstructure:"endpoint" validate:"omitempty,http_url"`
	TimeoutMs         int    `mapstructure:"timeout_ms" validate:"min=0"`
	CacheTTLHours     int    `mapstructure:"cache_ttl_hours" validate:"min=0"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"min=0"`
	MemoryCacheItems  int64  `mapstructure:"memory_cache_items" validate:"min=0"`
}
