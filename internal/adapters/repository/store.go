// Package repository persists assessment records, skill-gap reports and
// interview transcripts.
package repository

import (
	"context"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
)

// Store provides read/write access to candidate history.
type Store interface {
	// SaveAssessment inserts or replaces a record keyed by rec.ID.
	SaveAssessment(ctx context.Context, rec model.AssessmentRecord) error
	// GetAssessment returns ErrNotFound if the ID is unknown.
	GetAssessment(ctx context.Context, id string) (model.AssessmentRecord, error)

	// SaveSkillGap appends a report to the candidate's history.
	SaveSkillGap(ctx context.Context, candidateID string, r model.SkillGapReport) error
	// SkillGaps returns reports oldest first.
	SkillGaps(ctx context.Context, candidateID string) ([]model.SkillGapReport, error)

	// AppendInterviewTurn adds a scored turn to the candidate's transcript.
	AppendInterviewTurn(ctx context.Context, candidateID string, t model.InterviewTurn) error
	// InterviewTurns returns the transcript oldest first.
	InterviewTurns(ctx context.Context, candidateID string) ([]model.InterviewTurn, error)

	// Analytics summarizes finished assessments.
	Analytics(ctx context.Context) (types.Analytics, error)

	// Count returns the number of stored assessment records.
	Count(ctx context.Context) int
}
