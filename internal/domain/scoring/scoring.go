// Package scoring computes composite aptitude scores from raw candidate input.
// Scores are not clamped; with a 0-10 CGPA both land in roughly 0-100.
package scoring

import "github.com/okian/careerlens/internal/domain/model"

// Default weights of the intelligence score components.
const (
	defaultCGPAWeight     = 0.4
	defaultAptitudeWeight = 0.3
	defaultCodingWeight   = 0.3

	cgpaToPercent   = 20 // 0-10 CGPA onto 0-200 before weighting
	skillToPercent  = 10 // 1-10 skill onto 10-100
	cgpaToReadiness = 25
	readinessParts  = 4
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithIntelligenceWeights overrides the CGPA, aptitude and coding weights.
// Non-positive weights are ignored.
func WithIntelligenceWeights(cgpa, aptitude, coding float64) Option {
	return func(c *Calculator) {
		if cgpa > 0 && aptitude > 0 && coding > 0 {
			c.cgpaWeight = cgpa
			c.aptitudeWeight = aptitude
			c.codingWeight = coding
		}
	}
}

// Scores holds both composite scores.
type Scores struct {
	Intelligence float64 `json:"intelligence_score"`
	Readiness    float64 `json:"readiness_score"`
}

// Calculator computes composite scores. It is independent of the classifier.
type Calculator struct {
	cgpaWeight     float64
	aptitudeWeight float64
	codingWeight   float64
}

// NewCalculator creates a calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		cgpaWeight:     defaultCGPAWeight,
		aptitudeWeight: defaultAptitudeWeight,
		codingWeight:   defaultCodingWeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns both scores for in.
func (c *Calculator) Compute(in model.RawAssessmentInput) Scores {
	return Scores{
		Intelligence: c.Intelligence(in),
		Readiness:    c.Readiness(in),
	}
}

// Intelligence weighs academics, aptitude and coding.
func (c *Calculator) Intelligence(in model.RawAssessmentInput) float64 {
	return model.Round2(in.CGPA*cgpaToPercent*c.cgpaWeight +
		float64(in.Aptitude)*c.aptitudeWeight +
		float64(in.Coding*skillToPercent)*c.codingWeight)
}

// Readiness averages the three skills (as percentages) with scaled CGPA.
func (c *Calculator) Readiness(in model.RawAssessmentInput) float64 {
	sum := float64(in.Coding*skillToPercent) +
		float64(in.Communication*skillToPercent) +
		float64(in.Leadership*skillToPercent) +
		in.CGPA*cgpaToReadiness
	return model.Round2(sum / readinessParts)
}
