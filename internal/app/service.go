// Package service wires the assessment pipeline, the career catalog and the
// async machinery behind the operations the HTTP API and CLI call.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/careerlens/internal/adapters/mq/queue"
	"github.com/okian/careerlens/internal/adapters/mq/worker"
	"github.com/okian/careerlens/internal/adapters/repository"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/dedupe"
	"github.com/okian/careerlens/internal/domain/explain"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/interview"
	"github.com/okian/careerlens/internal/domain/personality"
	"github.com/okian/careerlens/internal/domain/resume"
	"github.com/okian/careerlens/internal/domain/salary"
	"github.com/okian/careerlens/internal/domain/scoring"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

const (
	tracerName          = "careerlens/service"
	defaultTrainSamples = 2000
	defaultQueueSize    = 1024
	defaultDedupeSize   = 50000
)

// artifacts are built once and shared read-only by every request.
type artifacts struct {
	catalog    *taxonomy.Catalog
	clf        *classifier.Classifier
	normalizer *features.Normalizer
	explainer  *explain.Explainer
	estimator  *salary.Estimator
	matcher    *resume.Matcher
	questions  *interview.Generator
}

func newArtifacts(cat *taxonomy.Catalog, bundle *classifier.Bundle, src rand.Source) *artifacts {
	clf := classifier.New(bundle)
	vocab := cat.Interests()
	if bundle != nil {
		vocab = bundle.Interests
	}
	return &artifacts{
		catalog:    cat,
		clf:        clf,
		normalizer: features.NewNormalizer(vocab),
		explainer:  explain.New(clf),
		estimator:  salary.NewEstimator(cat),
		matcher:    resume.NewMatcher(cat),
		questions:  interview.NewGenerator(cat, src),
	}
}

// Service implements the assessment API.
type Service struct {
	mu sync.Mutex

	art        atomic.Pointer[artifacts]
	calculator *scoring.Calculator
	answers    *interview.Scorer
	persona    *personality.Analyzer

	store   repository.Store
	deduper dedupe.Deduper
	queue   *queue.InMemoryQueue
	pool    *worker.Pool

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	catalog      *taxonomy.Catalog
	taxonomyPath string
	bundle       *classifier.Bundle
	modelPath    string
	trainSamples int
	trainerOpts  []classifier.Option
	lexicon      personality.Lexicon
	randSource   rand.Source

	started bool
	cancel  context.CancelFunc

	tracer trace.Tracer
	logger logger.Logger
}

// New constructs a Service. Stateless operations work immediately; the model,
// the catalog file and the async pipeline are loaded by Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		queueSize:    defaultQueueSize,
		dedupeSize:   defaultDedupeSize,
		catalog:      taxonomy.Default(),
		trainSamples: defaultTrainSamples,
		calculator:   scoring.NewCalculator(),
		answers:      interview.NewScorer(),
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.lexicon == nil {
		s.lexicon = personality.NewVaderLexicon()
	}
	if s.randSource == nil {
		s.randSource = rand.NewSource(rand.Int63()) //nolint:gosec // question selection only
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	}
	s.persona = personality.NewAnalyzer(s.lexicon)
	s.store = repository.NewBreakerStore(s.store)
	s.art.Store(newArtifacts(s.catalog, s.bundle, s.randSource))
	return s
}

// Start loads the catalog and model, then starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting assessment service...")

	cat := s.catalog
	if s.taxonomyPath != "" {
		loaded, err := taxonomy.LoadFile(s.taxonomyPath)
		if err != nil {
			return fmt.Errorf("load taxonomy: %w", err)
		}
		cat = loaded
		s.logger.Info(ctx, "career catalog loaded",
			logger.String("path", s.taxonomyPath), logger.Int("careers", len(cat.Names())))
	}

	bundle := s.loadModel(ctx)
	s.art.Store(newArtifacts(cat, bundle, s.randSource))

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, s.store)
	s.pool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("modelAvailable", bundle != nil))
	return nil
}

// loadModel returns the configured bundle, the artifact at modelPath or a
// freshly trained one. A missing model is not fatal: predictions degrade.
func (s *Service) loadModel(ctx context.Context) *classifier.Bundle {
	switch {
	case s.bundle != nil:
		metrics.UpdateModelAccuracy(s.bundle.Accuracy)
		return s.bundle
	case s.modelPath != "":
		b, err := classifier.Load(s.modelPath)
		if err != nil {
			s.logger.Error(ctx, "model unavailable, predictions disabled",
				logger.String("path", s.modelPath), logger.Error(err))
			return nil
		}
		metrics.UpdateModelAccuracy(b.Accuracy)
		s.logger.Info(ctx, "model loaded",
			logger.String("path", s.modelPath), logger.String("kind", b.Model.Kind()))
		return b
	default:
		rng := rand.New(rand.NewSource(42)) //nolint:gosec // reproducible synthetic data
		b, err := classifier.NewTrainer(s.trainerOpts...).Train(classifier.Synthetic(s.trainSamples, rng))
		if err != nil {
			s.logger.Error(ctx, "training failed, predictions disabled", logger.Error(err))
			return nil
		}
		metrics.UpdateModelAccuracy(b.Accuracy)
		s.logger.Info(ctx, "model trained on synthetic data",
			logger.Int("samples", s.trainSamples), logger.Float64("accuracy", b.Accuracy))
		return b
	}
}

// Stop drains the queue and waits for workers.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping assessment service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "assessment service stopped")
}

// Catalog returns the active career catalog.
func (s *Service) Catalog() *taxonomy.Catalog { return s.art.Load().catalog }

// ModelAvailable reports whether predictions can be made.
func (s *Service) ModelAvailable() bool { return s.art.Load().clf.Available() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"modelAvailable":  s.ModelAvailable(),
		"careers":         len(s.Catalog().Names()),
		"assessments":     s.store.Count(ctx),
		"submissionsSeen": s.deduper.Size(),
	}
	if b := s.art.Load().clf.Bundle(); b != nil {
		stats["modelKind"] = b.Model.Kind()
		stats["modelAccuracy"] = b.Accuracy
	}
	if s.started {
		depth := s.queue.Len()
		stats["queueLength"] = depth
		metrics.UpdateQueueDepth(depth, s.queue.Capacity())
	}
	return stats
}
