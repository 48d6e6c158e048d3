package service

import (
	"math/rand"

	"go.opentelemetry.io/otel/trace"

	"github.com/okian/careerlens/internal/adapters/repository"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/dedupe"
	"github.com/okian/careerlens/internal/domain/personality"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	"github.com/okian/careerlens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of async assessment workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the async queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the in-memory submission cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog uses a prepared career catalog.
func WithCatalog(c *taxonomy.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithTaxonomyPath loads the catalog from a YAML file on Start.
func WithTaxonomyPath(path string) Option {
	return func(s *Service) {
		s.taxonomyPath = path
	}
}

// WithBundle uses an already trained model.
func WithBundle(b *classifier.Bundle) Option {
	return func(s *Service) {
		s.bundle = b
	}
}

// WithModelPath loads the model artifact from path on Start. Without a path
// or bundle a model is trained on synthetic data.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithTrainSamples sets the synthetic dataset size used when training on Start.
func WithTrainSamples(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.trainSamples = n
		}
	}
}

// WithTrainerOptions forwards options to the trainer used on Start.
func WithTrainerOptions(opts ...classifier.Option) Option {
	return func(s *Service) {
		s.trainerOpts = append(s.trainerOpts, opts...)
	}
}

// WithStore sets the persistence backend.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithDeduper sets the submission deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithLexicon replaces the sentiment lexicon.
func WithLexicon(lex personality.Lexicon) Option {
	return func(s *Service) {
		if lex != nil {
			s.lexicon = lex
		}
	}
}

// WithRandSource sets the source used for question selection.
func WithRandSource(src rand.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.randSource = src
		}
	}
}

// WithTracerProvider sets the provider for pipeline spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}
