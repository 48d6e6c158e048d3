package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/careerlens/internal/domain/dedupe"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

// Submit runs Assess and stores the outcome under a new ID. Rejected input,
// including an interest outside the vocabulary, is not stored. A degraded run
// is stored and returned together with its error.
func (s *Service) Submit(ctx context.Context, candidateID string, in model.RawAssessmentInput) (model.AssessmentRecord, error) { //nolint:gocritic // hugeParam: read-only
	res, err := s.Assess(ctx, candidateID, in)
	rec := model.AssessmentRecord{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		Status:      model.StatusOf(res, err),
		Input:       in,
		Result:      res,
		CreatedAt:   time.Now().UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if rec.Status == model.StatusFailed || errors.Is(err, features.ErrUnknownCategory) {
		return rec, err
	}
	if saveErr := s.store.SaveAssessment(ctx, rec); saveErr != nil {
		return rec, errors.Join(err, fmt.Errorf("store assessment: %w", saveErr))
	}
	return rec, err
}

// SubmitAsync queues an assessment and returns its submission ID. An empty
// submissionID gets a fresh one. Resubmitting a known ID yields
// dedupe.ErrDuplicate; a full queue yields queue.ErrFull and the ID may be
// retried.
func (s *Service) SubmitAsync(ctx context.Context, submissionID, candidateID string, in model.RawAssessmentInput) (string, error) { //nolint:gocritic // hugeParam: read-only
	s.mu.Lock()
	q := s.queue
	s.mu.Unlock()
	if q == nil {
		return "", ErrNotStarted
	}
	if err := in.Validate(); err != nil {
		return "", err
	}
	if submissionID == "" {
		submissionID = uuid.NewString()
	}

	seen, err := s.deduper.SeenAndRecord(ctx, submissionID)
	if err != nil {
		return "", fmt.Errorf("check submission: %w", err)
	}
	if seen {
		metrics.RecordDuplicateSubmission()
		return submissionID, dedupe.ErrDuplicate
	}

	pending := model.AssessmentRecord{
		ID:          submissionID,
		CandidateID: candidateID,
		Status:      model.StatusPending,
		Input:       in,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.SaveAssessment(ctx, pending); err != nil {
		s.forget(ctx, submissionID)
		return "", fmt.Errorf("store pending assessment: %w", err)
	}

	job := model.AssessmentJob{SubmissionID: submissionID, CandidateID: candidateID, Input: in}
	if err := q.Enqueue(ctx, job); err != nil {
		s.forget(ctx, submissionID)
		pending.Status, pending.Error = model.StatusFailed, err.Error()
		if saveErr := s.store.SaveAssessment(ctx, pending); saveErr != nil {
			s.logger.Warn(ctx, "could not mark submission failed",
				logger.String("submission_id", submissionID), logger.Error(saveErr))
		}
		return submissionID, err
	}
	return submissionID, nil
}

func (s *Service) forget(ctx context.Context, id string) {
	if err := s.deduper.Unrecord(ctx, id); err != nil {
		s.logger.Warn(ctx, "could not release submission id",
			logger.String("submission_id", id), logger.Error(err))
	}
}

// GetAssessment returns a stored record.
func (s *Service) GetAssessment(ctx context.Context, id string) (model.AssessmentRecord, error) {
	return s.store.GetAssessment(ctx, id)
}

// RecordSkillGap appends report to the candidate's history.
func (s *Service) RecordSkillGap(ctx context.Context, candidateID string, report model.SkillGapReport) error {
	return s.store.SaveSkillGap(ctx, candidateID, report)
}

// RecordInterviewTurn appends turn to the candidate's transcript.
func (s *Service) RecordInterviewTurn(ctx context.Context, candidateID string, turn model.InterviewTurn) error {
	return s.store.AppendInterviewTurn(ctx, candidateID, turn)
}

// History returns the candidate's skill-gap reports and interview transcript.
func (s *Service) History(ctx context.Context, candidateID string) (types.CandidateHistory, error) {
	gaps, err := s.store.SkillGaps(ctx, candidateID)
	if err != nil {
		return types.CandidateHistory{}, err
	}
	turns, err := s.store.InterviewTurns(ctx, candidateID)
	if err != nil {
		return types.CandidateHistory{}, err
	}
	return types.CandidateHistory{CandidateID: candidateID, SkillGaps: gaps, InterviewTurns: turns}, nil
}

// Analytics summarizes stored assessments.
func (s *Service) Analytics(ctx context.Context) (types.Analytics, error) {
	return s.store.Analytics(ctx)
}
