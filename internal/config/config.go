// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
	"time"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Trace exporters.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// RateLimitRPS is the per-client request rate; 0 disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`

	// QueueSize bounds the async assessment queue.
	QueueSize int `koanf:"queue_size" validate:"gt=0"`
	// WorkerCount sets the number of assessment workers.
	WorkerCount int `koanf:"worker_count" validate:"gt=0"`
	// DedupeSize sets the size of the in-memory submission cache.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=0"`

	// ModelPath points at a trained model artifact. Empty trains on start.
	ModelPath     string `koanf:"model_path"`
	TrainSamples  int    `koanf:"train_samples" validate:"gt=0"`
	TrainTrees    int    `koanf:"train_trees" validate:"gt=0"`
	TrainMaxDepth int    `koanf:"train_max_depth" validate:"gt=0"`
	TrainSeed     int64  `koanf:"train_seed"`

	// TaxonomyPath points at a YAML career catalog. Empty uses the built-in one.
	TaxonomyPath string `koanf:"taxonomy_path"`
	// QuestionSeed fixes interview question order when non-zero.
	QuestionSeed int64 `koanf:"question_seed"`

	// StoreBackend selects where records live: memory or redis.
	StoreBackend   string        `koanf:"store_backend" validate:"oneof=memory redis"`
	RedisAddr      string        `koanf:"redis_addr" validate:"required_if=StoreBackend redis"`
	RedisPassword  string        `koanf:"redis_password"`
	RedisDB        int           `koanf:"redis_db" validate:"gte=0"`
	RedisPrefix    string        `koanf:"redis_prefix"`
	RecordTTL      time.Duration `koanf:"record_ttl" validate:"gte=0"`
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`

	// TracingEnabled installs an SDK tracer provider.
	TracingEnabled    bool    `koanf:"tracing_enabled"`
	TracingExporter   string  `koanf:"tracing_exporter" validate:"oneof=stdout otlp"`
	OTLPEndpoint      string  `koanf:"otlp_endpoint"`
	TracingSampleRate float64 `koanf:"tracing_sample_rate" validate:"gte=0,lte=1"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ShutdownTimeout:   15 * time.Second,
		RateLimitRPS:      0,
		RateLimitBurst:    20,
		QueueSize:         1024,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        50_000,
		TrainSamples:      2000,
		TrainTrees:        50,
		TrainMaxDepth:     10,
		TrainSeed:         42,
		StoreBackend:      StoreMemory,
		RedisAddr:         "localhost:6379",
		RedisPrefix:       "careerlens:",
		BreakerTimeout:    10 * time.Second,
		TracingExporter:   ExporterStdout,
		TracingSampleRate: 1,
	}
}
