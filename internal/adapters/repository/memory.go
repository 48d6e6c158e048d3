package repository

import (
	"context"
	"sync"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
)

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[string]model.AssessmentRecord
	skillGaps   map[string][]model.SkillGapReport
	turns       map[string][]model.InterviewTurn
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessments: make(map[string]model.AssessmentRecord),
		skillGaps:   make(map[string][]model.SkillGapReport),
		turns:       make(map[string][]model.InterviewTurn),
	}
}

// SaveAssessment implements Store.
func (s *MemoryStore) SaveAssessment(_ context.Context, rec model.AssessmentRecord) error { //nolint:gocritic // hugeParam: stored by value
	if rec.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	s.assessments[rec.ID] = rec
	s.mu.Unlock()
	return nil
}

// GetAssessment implements Store.
func (s *MemoryStore) GetAssessment(_ context.Context, id string) (model.AssessmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.assessments[id]
	if !ok {
		return model.AssessmentRecord{}, ErrNotFound
	}
	return rec, nil
}

// SaveSkillGap implements Store.
func (s *MemoryStore) SaveSkillGap(_ context.Context, candidateID string, r model.SkillGapReport) error {
	if candidateID == "" {
		return ErrMissingCandidate
	}
	s.mu.Lock()
	s.skillGaps[candidateID] = append(s.skillGaps[candidateID], r)
	s.mu.Unlock()
	return nil
}

// SkillGaps implements Store.
func (s *MemoryStore) SkillGaps(_ context.Context, candidateID string) ([]model.SkillGapReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SkillGapReport(nil), s.skillGaps[candidateID]...), nil
}

// AppendInterviewTurn implements Store.
func (s *MemoryStore) AppendInterviewTurn(_ context.Context, candidateID string, t model.InterviewTurn) error {
	if candidateID == "" {
		return ErrMissingCandidate
	}
	s.mu.Lock()
	s.turns[candidateID] = append(s.turns[candidateID], t)
	s.mu.Unlock()
	return nil
}

// InterviewTurns implements Store.
func (s *MemoryStore) InterviewTurns(_ context.Context, candidateID string) ([]model.InterviewTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InterviewTurn(nil), s.turns[candidateID]...), nil
}

// Analytics implements Store.
func (s *MemoryStore) Analytics(_ context.Context) (types.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t types.Tally
	for _, rec := range s.assessments {
		t.Add(rec)
	}
	return t.Analytics(), nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assessments)
}
