package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

// BreakerStore guards a backend with a circuit breaker and records per
// operation latency. While the breaker is open calls fail fast with
// ErrUnavailable.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	log  logger.Logger
}

// NewBreakerStore wraps next.
func NewBreakerStore(next Store, opts ...BreakerOption) *BreakerStore {
	cfg := breakerSettings{
		name:         "store",
		maxRequests:  1,
		interval:     time.Minute,
		timeout:      10 * time.Second,
		minRequests:  5,
		failureRatio: 0.6,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &BreakerStore{next: next, log: logger.Get().Named("store-breaker")}
	s.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.name,
		MaxRequests: cfg.maxRequests,
		Interval:    cfg.interval,
		Timeout:     cfg.timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.minRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.failureRatio
		},
		// Caller mistakes say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrMissingID) ||
				errors.Is(err, ErrMissingCandidate)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn(context.Background(), "circuit breaker state changed",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
	})
	return s
}

// State reports the breaker state, e.g. "closed" or "open".
func (s *BreakerStore) State() string { return s.cb.State().String() }

func (s *BreakerStore) run(op string, fn func() (any, error)) (any, error) {
	start := time.Now()
	v, err := s.cb.Execute(fn)
	status := "ok"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		status = "rejected"
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	metrics.RecordStoreOperation(op, status, float64(time.Since(start).Microseconds())/1000)
	return v, err
}

// SaveAssessment implements Store.
func (s *BreakerStore) SaveAssessment(ctx context.Context, rec model.AssessmentRecord) error { //nolint:gocritic // hugeParam: forwarded by value
	_, err := s.run("save_assessment", func() (any, error) {
		return nil, s.next.SaveAssessment(ctx, rec)
	})
	return err
}

// GetAssessment implements Store.
func (s *BreakerStore) GetAssessment(ctx context.Context, id string) (model.AssessmentRecord, error) {
	v, err := s.run("get_assessment", func() (any, error) {
		return s.next.GetAssessment(ctx, id)
	})
	rec, _ := v.(model.AssessmentRecord)
	return rec, err
}

// SaveSkillGap implements Store.
func (s *BreakerStore) SaveSkillGap(ctx context.Context, candidateID string, r model.SkillGapReport) error {
	_, err := s.run("save_skill_gap", func() (any, error) {
		return nil, s.next.SaveSkillGap(ctx, candidateID, r)
	})
	return err
}

// SkillGaps implements Store.
func (s *BreakerStore) SkillGaps(ctx context.Context, candidateID string) ([]model.SkillGapReport, error) {
	v, err := s.run("skill_gaps", func() (any, error) {
		return s.next.SkillGaps(ctx, candidateID)
	})
	out, _ := v.([]model.SkillGapReport)
	return out, err
}

// AppendInterviewTurn implements Store.
func (s *BreakerStore) AppendInterviewTurn(ctx context.Context, candidateID string, t model.InterviewTurn) error {
	_, err := s.run("append_interview_turn", func() (any, error) {
		return nil, s.next.AppendInterviewTurn(ctx, candidateID, t)
	})
	return err
}

// InterviewTurns implements Store.
func (s *BreakerStore) InterviewTurns(ctx context.Context, candidateID string) ([]model.InterviewTurn, error) {
	v, err := s.run("interview_turns", func() (any, error) {
		return s.next.InterviewTurns(ctx, candidateID)
	})
	out, _ := v.([]model.InterviewTurn)
	return out, err
}

// Analytics implements Store.
func (s *BreakerStore) Analytics(ctx context.Context) (types.Analytics, error) {
	v, err := s.run("analytics", func() (any, error) {
		return s.next.Analytics(ctx)
	})
	out, _ := v.(types.Analytics)
	return out, err
}

// Count implements Store.
func (s *BreakerStore) Count(ctx context.Context) int {
	return s.next.Count(ctx)
}
