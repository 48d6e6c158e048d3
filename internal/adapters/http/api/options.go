package api

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/careerlens/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit enables per-client rate limiting. Non-positive rates leave it
// disabled.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(s *Server) {
		if requestsPerSecond > 0 {
			s.limiter = NewLimiterManager(requestsPerSecond, burst)
		}
	}
}

// WithTracerProvider sets the provider for HTTP server spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
