// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RawAssessmentInput is one candidate submission. CGPA is read on a 0-10 scale.
type RawAssessmentInput struct {
	CGPA           float64 `json:"cgpa" validate:"gte=0,lte=10"`
	Aptitude       int     `json:"aptitude" validate:"gte=0,lte=100"`
	Coding         int     `json:"coding" validate:"gte=1,lte=10"`
	Communication  int     `json:"communication" validate:"gte=1,lte=10"`
	Leadership     int     `json:"leadership" validate:"gte=1,lte=10"`
	InterestDomain string  `json:"interest" validate:"required"`
}

var validate = validator.New()

// Validate checks field ranges and wraps failures with ErrInvalidInput.
func (in RawAssessmentInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// FeatureContribution is one entry of an additive attribution.
type FeatureContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// Market describes demand for a career.
type Market struct {
	Demand int    `json:"demand"`
	Growth int    `json:"growth"`
	Trend  string `json:"trend"`
}

// Issue records a pipeline stage that was skipped.
type Issue struct {
	Stage   string `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AssessmentResult aggregates every output of one prediction request.
type AssessmentResult struct {
	PredictedCareer   string                `json:"predicted_career,omitempty"`
	Confidence        float64               `json:"confidence"`
	PredictedSalary   float64               `json:"predicted_salary"`
	SalaryProjection  []float64             `json:"salary_projection,omitempty"`
	IntelligenceScore float64               `json:"intelligence_score"`
	ReadinessScore    float64               `json:"readiness_score"`
	Baseline          float64               `json:"baseline,omitempty"`
	Attribution       []FeatureContribution `json:"attribution,omitempty"`
	Market            *Market               `json:"market,omitempty"`
	Roadmap           []string              `json:"roadmap,omitempty"`
	Issues            []Issue               `json:"issues,omitempty"`
}

// Degraded reports whether any stage was skipped.
func (r AssessmentResult) Degraded() bool { return len(r.Issues) > 0 }

// SkillGapReport compares a resume against the skills a career requires.
type SkillGapReport struct {
	Career        string   `json:"career"`
	FoundSkills   []string `json:"found_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchScore    float64  `json:"match_score"`
	ATSScore      float64  `json:"ats_score"`
}

// InterviewTurn is one scored question/answer exchange.
type InterviewTurn struct {
	Career    string  `json:"career,omitempty"`
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	WordCount int     `json:"word_count"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

// Polarity is a lexicon sentiment reading.
type Polarity struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// TraitScore is a single personality trait value.
type TraitScore struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
}

// PersonalityReading is derived from a self-description.
type PersonalityReading struct {
	Traits        []TraitScore `json:"traits"`
	DominantTrait string       `json:"dominant_trait"`
	Sentiment     Polarity     `json:"sentiment"`
}

// Trait returns the score for name and whether it exists.
func (p PersonalityReading) Trait(name string) (float64, bool) {
	for _, t := range p.Traits {
		if t.Trait == name {
			return t.Score, true
		}
	}
	return 0, false
}

// Record lifecycle states.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDegraded  = "degraded"
	StatusFailed    = "failed"
)

// AssessmentRecord is the persisted form of an assessment.
type AssessmentRecord struct {
	ID          string             `json:"id"`
	CandidateID string             `json:"candidate_id,omitempty"`
	Status      string             `json:"status"`
	Error       string             `json:"error,omitempty"`
	Input       RawAssessmentInput `json:"input"`
	Result      AssessmentResult   `json:"result"`
	CreatedAt   time.Time          `json:"created_at"`
}

// StatusOf classifies the outcome of an assessment run.
func StatusOf(res AssessmentResult, err error) string {
	switch {
	case err == nil:
		return StatusCompleted
	case res.Degraded():
		return StatusDegraded
	default:
		return StatusFailed
	}
}

// AssessmentJob is queued for asynchronous processing.
type AssessmentJob struct {
	SubmissionID string
	CandidateID  string
	Input        RawAssessmentInput
}
