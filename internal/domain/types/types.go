// Package types contains read models shared by the store and the API.
package types

import (
	"sort"

	"github.com/okian/careerlens/internal/domain/model"
)

// CareerCount is the number of assessments that predicted a career.
type CareerCount struct {
	Career string `json:"career"`
	Count  int    `json:"count"`
}

// Analytics summarizes stored assessments.
type Analytics struct {
	TotalAssessments    int           `json:"total_assessments"`
	CareerCounts        []CareerCount `json:"career_counts"`
	AverageIntelligence float64       `json:"average_intelligence"`
	TopCareer           string        `json:"top_career,omitempty"`
}

// Tally accumulates assessment records into Analytics.
type Tally struct {
	total    int
	sumIntel float64
	counts   map[string]int
}

// Add folds rec into the tally. Pending and failed records carry no result
// and are skipped.
func (t *Tally) Add(rec model.AssessmentRecord) { //nolint:gocritic // hugeParam: read-only
	if rec.Status != model.StatusCompleted && rec.Status != model.StatusDegraded {
		return
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	t.total++
	t.sumIntel += rec.Result.IntelligenceScore
	if c := rec.Result.PredictedCareer; c != "" {
		t.counts[c]++
	}
}

// Analytics returns the summary. Careers are ordered by count desc, then name.
func (t *Tally) Analytics() Analytics {
	out := Analytics{
		TotalAssessments: t.total,
		CareerCounts:     make([]CareerCount, 0, len(t.counts)),
	}
	if t.total > 0 {
		out.AverageIntelligence = model.Round2(t.sumIntel / float64(t.total))
	}
	for c, n := range t.counts {
		out.CareerCounts = append(out.CareerCounts, CareerCount{Career: c, Count: n})
	}
	sort.Slice(out.CareerCounts, func(i, j int) bool {
		a, b := out.CareerCounts[i], out.CareerCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Career < b.Career
	})
	if len(out.CareerCounts) > 0 {
		out.TopCareer = out.CareerCounts[0].Career
	}
	return out
}

// CandidateHistory is everything stored for one candidate besides
// assessments.
type CandidateHistory struct {
	CandidateID    string                 `json:"candidate_id"`
	SkillGaps      []model.SkillGapReport `json:"skill_gaps"`
	InterviewTurns []model.InterviewTurn  `json:"interview_turns"`
}
