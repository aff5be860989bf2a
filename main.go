package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filestats/internal/cachestore"
	"filestats/internal/filesystem"
	"filestats/internal/handlers"
	"filestats/internal/indexer"
	"filestats/internal/logging"
	"filestats/internal/middleware"
	"filestats/internal/site"
	"filestats/internal/startup"
	"filestats/internal/stats"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Label filesystem metrics by mount
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"content": config.ContentDir,
		"static":  config.StaticDir,
		"state":   config.StateDir,
	}))

	// Initialize cache store
	store, err := openStore(config)
	if err != nil {
		startup.LogFatal("Failed to initialize cache store: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	// Initialize indexer
	startup.LogIndexerInit(config.IndexInterval)
	recon := indexer.New(store, stats.Options{WholeDocument: config.WholeDocument})
	builder := site.NewBuilder(config.ContentDir, config.StaticDir)
	service := indexer.NewService(recon, builder, config.IndexInterval)
	service.Start()
	startup.LogIndexerStarted()

	// Initialize handlers
	h := handlers.New(service, config)

	// Setup router
	router := setupRouter(h, config)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply metrics middleware
	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Apply compression middleware
	handler = middleware.Compression()(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, service)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

// openStore builds the cache store selected by the configuration. A nil
// store disables persistence and forces every pass to rebuild from disk.
func openStore(config *startup.Config) (cachestore.Store, error) {
	if !config.UseCaching {
		logging.Info("Caching disabled, stats will be rebuilt on every pass")
		return nil, nil
	}

	start := time.Now()
	switch config.CacheBackend {
	case startup.BackendSQLite:
		store, err := cachestore.NewSQLiteStore(context.Background(), config.CacheFile)
		if err != nil {
			return nil, err
		}
		startup.LogCacheInit("sqlite", time.Since(start))
		return store, nil
	default:
		store := cachestore.NewFileStore(config.CacheFile)
		startup.LogCacheInit("file", time.Since(start))
		return store, nil
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/stats/file", h.GetFileStats).Methods("GET")
	api.HandleFunc("/reindex", h.TriggerReindex).Methods("POST")

	// Metrics
	if config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return r
}

func handleShutdown(srv *http.Server, service *indexer.Service) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping indexer")
	service.Stop()
	startup.LogShutdownStepComplete("Indexer stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
