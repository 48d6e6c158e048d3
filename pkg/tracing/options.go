package tracing

import (
	"io"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type config struct {
	enabled        bool
	kind           string
	endpoint       string
	sampleRate     float64
	serviceName    string
	serviceVersion string
	writer         io.Writer
	exporter       sdktrace.SpanExporter
}

func defaults() *config {
	return &config{
		kind:           ExporterStdout,
		sampleRate:     1,
		serviceName:    "careerlens",
		serviceVersion: "dev",
	}
}

// Option configures Setup.
type Option func(*config)

// WithEnabled toggles tracing. Disabled is the default.
func WithEnabled(enabled bool) Option {
	return func(c *config) { c.enabled = enabled }
}

// WithExporterKind selects stdout or otlp.
func WithExporterKind(kind string) Option {
	return func(c *config) {
		if kind != "" {
			c.kind = kind
		}
	}
}

// WithEndpoint sets the OTLP/HTTP collector URL.
func WithEndpoint(url string) Option {
	return func(c *config) { c.endpoint = url }
}

// WithSampleRate sets the head sampling ratio in [0,1].
func WithSampleRate(rate float64) Option {
	return func(c *config) {
		if rate >= 0 && rate <= 1 {
			c.sampleRate = rate
		}
	}
}

// WithService sets the service.name and service.version resource attributes.
func WithService(name, version string) Option {
	return func(c *config) {
		if name != "" {
			c.serviceName = name
		}
		if version != "" {
			c.serviceVersion = version
		}
	}
}

// WithWriter redirects the stdout exporter.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.writer = w }
}

// WithExporter overrides exporter construction entirely.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(c *config) { c.exporter = exp }
}
