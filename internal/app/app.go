package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"link-rotator/internal/aggregators"
	"link-rotator/internal/eventlogs"
	"link-rotator/internal/events"
	"link-rotator/internal/geolocators"
	"link-rotator/internal/healthchecks"
	internalhttp "link-rotator/internal/http"
	"link-rotator/internal/rotators"
	"link-rotator/internal/shared/configs"
	"link-rotator/internal/shared/filestorages"
	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/stores"
	"link-rotator/internal/streams"
	"link-rotator/internal/updaters"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	locator   geolocators.Locator

	// eventConsumer is nil unless the event log runs in async mode.
	eventConsumer    streams.RedirectEventConsumer
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance. configPath is only
// reported by the health endpoint; config is already loaded.
func New(config *configs.Config, configPath string) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "link-rotator").
		Logger()

	location, err := time.LoadLocation(config.Rotator.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", config.Rotator.Timezone, err)
	}

	// Initialize flat-file storage
	fileStorage, err := filestorages.NewFileStorage(config.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := os.MkdirAll(config.Storage.LogsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	urlSetStore := stores.NewURLSetStore(fileStorage)
	rateLimitStore := stores.NewRateLimitStore(fileStorage,
		config.RateLimit.MaxRequests,
		time.Duration(config.RateLimit.WindowSeconds)*time.Second)

	// Initialize event log
	layout := eventlogs.Layout{Dir: config.Storage.LogsDir, Base: config.EventLog.FileName}
	eventStore := eventlogs.NewEventStore(layout, config.EventLog.MaxSizeBytes)
	eventReader := eventlogs.NewReader(layout, eventlogs.WithChronologicalOrder(config.EventLog.ChronologicalRead))
	appendTimeout := time.Duration(config.EventLog.AppendTimeoutMs) * time.Millisecond

	var (
		sink          streams.EventSink
		eventConsumer streams.RedirectEventConsumer
	)
	switch {
	case !config.EventLog.Enabled:
		sink = streams.NewNoopEventSink()
	case config.EventLog.SinkMode == "async":
		queue := streams.NewPartitionedQueue[events.RedirectRecordedEvent](
			config.EventLog.QueuePartitions, config.EventLog.QueueBuffer)
		consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
		eventConsumer = streams.NewRedirectEventConsumer(queue, eventStore, appendTimeout, consumerLogger)
		sink = streams.NewAsyncEventSink(queue)
	default:
		sink = streams.NewSyncEventSink(eventStore, appendTimeout)
	}

	// Initialize geolocation
	locator, err := newLocator(config.Geo, fileStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geolocation: %w", err)
	}

	// Initialize services
	redirectService := rotators.NewRedirectService(rotators.RedirectServiceDeps{
		URLSetStore:  urlSetStore,
		FallbackURLs: config.Rotator.FallbackURLs,
		Picker:       rotators.NewPicker(),
		Locator:      locator,
		Sink:         sink,
		Location:     location,
	})
	aggregator := aggregators.NewAggregator(location, config.EventLog.RecentSampleSize)
	statsService := aggregators.NewStatsService(eventReader, aggregator, location, time.Now)
	updateService := updaters.NewUpdateService(updaters.UpdateServiceDeps{
		Token:          config.Rotator.Token,
		URLSetStore:    urlSetStore,
		RateLimitStore: rateLimitStore,
		Location:       location,
	})
	healthService := healthchecks.NewHealthService(healthchecks.HealthServiceDeps{
		ConfigPath:        configPath,
		DataDir:           config.Storage.DataDir,
		LogsDir:           config.Storage.LogsDir,
		UsingDefaultToken: config.Rotator.Token == configs.DefaultToken,
		URLSetStore:       urlSetStore,
		Location:          location,
	})

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.RouterDeps{
		RedirectService: redirectService,
		HealthService:   healthService,
		StatsService:    statsService,
		UpdateService:   updateService,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:        config,
		appLogger:     appLogger,
		server:        server,
		locator:       locator,
		eventConsumer: eventConsumer,
	}, nil
}

func newLocator(config configs.GeoConfig, fileStorage filestorages.FileStorage) (geolocators.Locator, error) {
	if !config.Enabled {
		return geolocators.NewNoopLocator(), nil
	}
	upstream := geolocators.NewIPAPILocator(geolocators.IPAPIOptions{
		Endpoint:          config.Endpoint,
		Timeout:           time.Duration(config.TimeoutMs) * time.Millisecond,
		RequestsPerMinute: config.RequestsPerMinute,
	})
	return geolocators.NewCachedLocator(upstream, stores.NewGeoCacheStore(fileStorage), geolocators.CacheOptions{
		TTL:              time.Duration(config.CacheTTLHours) * time.Hour,
		MemoryCacheItems: config.MemoryCacheItems,
	})
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting link-rotator service on port %d (log_level=%s, data_dir=%s, logs_dir=%s, sink_mode=%s, geo=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.DataDir,
			app.config.Storage.LogsDir,
			app.config.EventLog.SinkMode,
			app.config.Geo.Enabled)
	if app.config.Rotator.Token == configs.DefaultToken {
		app.appLogger.Warn().Msg("URL update API is using the default token")
	}

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	if app.eventConsumer != nil {
		app.eventConsumer.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background consumers cancelled")
	}

	// 3) Drain queued events before exit
	if app.eventConsumer != nil {
		app.eventConsumer.Stop()
		app.appLogger.Info().Msg("Background consumers stopped")
	}

	app.locator.Close()
	return nil
}
