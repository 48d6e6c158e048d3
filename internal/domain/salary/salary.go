// Package salary estimates a starting salary and its growth from the predicted
// career and coding skill.
package salary

import (
	"math"

	"github.com/okian/careerlens/internal/domain/model"
)

// ProjectionYears is the number of projected years.
const ProjectionYears = 5

const (
	neutralCoding = 5
	codingStep    = 0.1
	annualGrowth  = 1.1
)

// BaseTable resolves the base salary for a career.
type BaseTable interface {
	BaseSalary(career string) float64
}

// Estimate is a salary with its yearly projection.
type Estimate struct {
	Salary     float64                  `json:"predicted_salary"`
	Projection [ProjectionYears]float64 `json:"salary_projection"`
}

// Estimator computes salary estimates from a base table.
type Estimator struct {
	bases BaseTable
}

// NewEstimator creates an estimator backed by bases.
func NewEstimator(bases BaseTable) *Estimator {
	return &Estimator{bases: bases}
}

// Estimate scales the career's base salary by coding skill and projects it
// forward at 10% a year.
func (e *Estimator) Estimate(career string, coding int) Estimate {
	base := e.bases.BaseSalary(career)
	s := model.Round2(base * (1 + float64(coding-neutralCoding)*codingStep))
	out := Estimate{Salary: s}
	for i := range out.Projection {
		out.Projection[i] = model.Round2(s * math.Pow(annualGrowth, float64(i+1)))
	}
	return out
}
