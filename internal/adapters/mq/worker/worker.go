// Package worker runs queued assessments and persists their outcome.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Job is what workers read off the queue.
type Job = model.AssessmentJob

// Assessor runs the assessment pipeline.
type Assessor interface {
	Assess(ctx context.Context, candidateID string, in model.RawAssessmentInput) (model.AssessmentResult, error)
}

// Recorder persists finished assessments.
type Recorder interface {
	SaveAssessment(ctx context.Context, rec model.AssessmentRecord) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker drains the queue until it closes or ctx is cancelled.
type Worker struct {
	queue    Queue
	assessor Assessor
	recorder Recorder
	name     string
	now      func() time.Time
	logger   logger.Logger

	shutdown chan struct{}
	done     chan struct{}
}

// NewWorker creates a worker with configuration options.
func NewWorker(q Queue, a Assessor, r Recorder, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		assessor: a,
		recorder: r,
		name:     "worker",
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until the queue closes, Shutdown is called or ctx ends.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "assessment job failed",
					logger.String("submission_id", j.SubmissionID), logger.Error(err))
			}
		}
	}
}

// Shutdown signals the worker and waits for the current job to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *Worker) process(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	start := w.now()

	res, assessErr := w.assess(ctx, j)
	rec := model.AssessmentRecord{
		ID:          j.SubmissionID,
		CandidateID: j.CandidateID,
		Status:      model.StatusOf(res, assessErr),
		Input:       j.Input,
		Result:      res,
		CreatedAt:   start.UTC(),
	}
	if assessErr != nil {
		rec.Error = assessErr.Error()
	}

	saveErr := w.recorder.SaveAssessment(ctx, rec)
	failed := saveErr != nil || rec.Status == model.StatusFailed
	metrics.RecordWorkerJob(float64(w.now().Sub(start).Milliseconds()), failed)

	if saveErr != nil {
		return fmt.Errorf("store assessment %s: %w", j.SubmissionID, saveErr)
	}
	w.logger.Debug(ctx, "assessment job done",
		logger.String("submission_id", j.SubmissionID),
		logger.String("status", rec.Status))
	return nil
}

// assess runs the assessor and reports a panic as a failed run so one bad
// job cannot stop the pool.
func (w *Worker) assess(ctx context.Context, j Job) (res model.AssessmentResult, err error) { //nolint:gocritic // hugeParam: read-only
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(ctx, "assessment panicked",
				logger.String("submission_id", j.SubmissionID), logger.Any("panic", r))
			res, err = model.AssessmentResult{}, fmt.Errorf("%w: %v", ErrAssessPanic, r)
		}
	}()
	return w.assessor.Assess(ctx, j.CandidateID, j.Input)
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	workers []*Worker
	queue   Queue
	logger  logger.Logger
	wg      sync.WaitGroup
}

// NewPool creates workerCount workers. Values below one default to NumCPU.
func NewPool(workerCount int, q Queue, a Assessor, r Recorder, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewWorker(q, a, r, wopts...)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	metrics.UpdateWorkerActive(len(p.workers))
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue so buffered jobs drain, then waits for workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	ctx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	select {
	case <-done:
		metrics.UpdateWorkerActive(0)
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("worker pool shutdown: %w", ctx.Err())
	}
}
