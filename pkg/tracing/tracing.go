// Package tracing installs the OpenTelemetry tracer provider for the process.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter kinds.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnknownExporter is returned for an exporter kind Setup does not know.
var ErrUnknownExporter = errors.New("unknown trace exporter")

// ShutdownFunc flushes and stops the installed provider.
type ShutdownFunc func(context.Context) error

// Setup builds a tracer provider and registers it globally together with
// the W3C trace-context propagator. When tracing is disabled it returns a
// no-op provider and a no-op shutdown.
func Setup(ctx context.Context, opts ...Option) (trace.TracerProvider, ShutdownFunc, error) {
	cfg := defaults()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.enabled {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	exporter := cfg.exporter
	if exporter == nil {
		var err error
		if exporter, err = newExporter(ctx, cfg); err != nil {
			return nil, nil, err
		}
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.serviceName),
			semconv.ServiceVersion(cfg.serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.sampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg *config) (sdktrace.SpanExporter, error) {
	switch cfg.kind {
	case ExporterStdout:
		var opts []stdouttrace.Option
		if cfg.writer != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.writer))
		}
		exp, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		return exp, nil
	case ExporterOTLP:
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.endpoint))
		if err != nil {
			return nil, fmt.Errorf("otlp trace exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.kind)
	}
}
