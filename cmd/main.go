package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/leodovqa/palworld-data-tool/internal/adapters/http/api"
	"github.com/leodovqa/palworld-data-tool/internal/adapters/http/site"
	"github.com/leodovqa/palworld-data-tool/internal/adapters/http/swagger"
	"github.com/leodovqa/palworld-data-tool/internal/adapters/loader"
	service "github.com/leodovqa/palworld-data-tool/internal/app"
	"github.com/leodovqa/palworld-data-tool/internal/config"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
	"github.com/leodovqa/palworld-data-tool/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Default Go collectors are replaced by our own system gauges.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Named("paldex")

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	src, err := newSource(cfg)
	if err != nil {
		log.Fatal(ctx, "invalid data source", logger.Error(err))
	}

	svc := service.New(
		service.WithLogger(logger.Named("service")),
		service.WithSource(src),
		service.WithLoadTimeout(cfg.LoadTimeout()),
		service.WithSuggestLimit(cfg.SuggestLimit),
	)
	if err := svc.Start(ctx); err != nil {
		if errors.Is(err, loader.ErrFlatRecords) {
			log.Fatal(ctx, "pal records unavailable", logger.String("source", src.String()), logger.Error(err))
		}
		log.Fatal(ctx, "failed to start service", logger.Error(err))
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	handler, err := newHandler(ctx, cfg, svc, logger.Named("http"))
	if err != nil {
		log.Fatal(ctx, "failed to build routes", logger.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// newSource picks the remote base URL when one is configured, the data
// directory otherwise.
func newSource(cfg *config.Config) (loader.Source, error) {
	if cfg.DataURL != "" {
		return loader.NewHTTPSource(cfg.DataURL, &http.Client{Timeout: cfg.LoadTimeout()})
	}
	return loader.NewDirSource(cfg.DataDir), nil
}

// newHandler mounts the API, the docs and the UI on one router. The data
// directory is exposed under /data/ only when serve_data is set and the
// dataset is read from disk.
func newHandler(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) (http.Handler, error) {
	srv := api.NewServer(svc, svc,
		api.WithLogger(log),
		api.WithCORSOrigins(cfg.CORSOrigins),
	)
	r := srv.Router()
	swagger.Register(ctx, r)

	var opts []site.Option
	if cfg.ServeData && cfg.DataURL == "" {
		opts = append(opts, site.WithDataDir(cfg.DataDir))
	}
	if err := site.Register(ctx, r, opts...); err != nil {
		return nil, err
	}
	return srv, nil
}

// startSystemMetricsUpdater refreshes the system gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
