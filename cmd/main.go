package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/okian/careerlens/internal/adapters/http/api"
	"github.com/okian/careerlens/internal/adapters/http/swagger"
	"github.com/okian/careerlens/internal/adapters/repository"
	app "github.com/okian/careerlens/internal/app"
	"github.com/okian/careerlens/internal/config"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/dedupe"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
	"github.com/okian/careerlens/pkg/tracing"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	redisPingTimeout          = 3 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

var version = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use stderr since the logger is not configured yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "careerlens exited with error", logger.Error(err))
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop already called
	}
}

// run wires the process and blocks until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	tp, shutdownTracing, err := tracing.Setup(ctx,
		tracing.WithEnabled(cfg.TracingEnabled),
		tracing.WithExporterKind(cfg.TracingExporter),
		tracing.WithEndpoint(cfg.OTLPEndpoint),
		tracing.WithSampleRate(cfg.TracingSampleRate),
		tracing.WithService("careerlens", version),
	)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error(ctx, "tracing shutdown failed", logger.Error(err))
		}
	}()

	store, deduper, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error(ctx, "store close failed", logger.Error(err))
		}
	}()

	svc := app.New(serviceOptions(cfg, log, tp, store, deduper)...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		svc.Stop(stopCtx)
	}()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	apiServer := api.NewServer(svc,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTracerProvider(tp),
		api.WithLogger(log.Named("http")),
	)
	defer apiServer.Close()

	mux := http.NewServeMux()
	swagger.Register(mux)
	apiServer.Register(mux)
	srv := newHTTPServer(cfg.Addr, apiServer.Handler(mux))

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// buildStore selects the record store and submission deduper. A nil store or
// deduper lets the service fall back to its in-memory defaults.
func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, dedupe.Deduper, func() error, error) {
	if cfg.StoreBackend != config.StoreRedis {
		return nil, nil, func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := repository.NewRedisStore(client,
		repository.WithPrefix(cfg.RedisPrefix),
		repository.WithRecordTTL(cfg.RecordTTL),
	)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	deduper := dedupe.NewRedisDeduper(client, cfg.RedisPrefix, cfg.RecordTTL)
	return store, deduper, client.Close, nil
}

func serviceOptions(cfg *config.Config, log logger.Logger, tp trace.TracerProvider, store repository.Store, deduper dedupe.Deduper) []app.Option {
	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithTaxonomyPath(cfg.TaxonomyPath),
		app.WithModelPath(cfg.ModelPath),
		app.WithTrainSamples(cfg.TrainSamples),
		app.WithTrainerOptions(
			classifier.WithTrees(cfg.TrainTrees),
			classifier.WithMaxDepth(cfg.TrainMaxDepth),
			classifier.WithSeed(cfg.TrainSeed),
		),
		app.WithTracerProvider(tp),
	}
	if store != nil {
		opts = append(opts, app.WithStore(store))
	}
	if deduper != nil {
		opts = append(opts, app.WithDeduper(deduper))
	}
	if cfg.QuestionSeed != 0 {
		opts = append(opts, app.WithRandSource(rand.NewSource(cfg.QuestionSeed))) //nolint:gosec // question order only
	}
	return opts
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
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

// startServiceMetricsUpdater refreshes queue gauges that only move on demand.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
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
