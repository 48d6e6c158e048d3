// Package explain attributes a tree-ensemble prediction to its input features
// with exact Shapley values.
//
// The value of a coalition S is the model's expected output when only the
// features in S are known, taken along each tree by following known splits and
// averaging unknown ones by node cover. Every coalition is enumerated, so the
// contributions plus the baseline add up to the predicted probability.
package explain

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
)

// maxFeatures keeps enumeration at 2^16 coalitions at most.
const maxFeatures = 16

// Explanation is an additive attribution of one prediction.
type Explanation struct {
	Career        string                      `json:"career"`
	Baseline      float64                     `json:"baseline"`
	Prediction    float64                     `json:"prediction"`
	Contributions []model.FeatureContribution `json:"contributions"`
}

// Sum returns baseline plus every contribution.
func (e Explanation) Sum() float64 {
	s := e.Baseline
	for _, c := range e.Contributions {
		s += c.Contribution
	}
	return s
}

// Explainer produces explanations for a classifier's predictions.
type Explainer struct {
	clf *classifier.Classifier
}

// New creates an explainer for clf.
func New(clf *classifier.Classifier) *Explainer {
	return &Explainer{clf: clf}
}

// Explain attributes the probability of the predicted career for v.
func (e *Explainer) Explain(v features.Vector) (Explanation, error) {
	if e.clf == nil || !e.clf.Available() {
		return Explanation{}, classifier.ErrModelUnavailable
	}
	b := e.clf.Bundle()
	cm, ok := b.Model.(classifier.ConditionalModel)
	if !ok {
		return Explanation{}, fmt.Errorf("%w: %s", ErrExplainabilityUnavailable, b.Model.Kind())
	}

	x := b.Prepare(v)
	n := len(x)
	if n > maxFeatures {
		return Explanation{}, fmt.Errorf("%w: %d", ErrTooManyFeatures, n)
	}
	class, proba := cm.Predict(x)
	if class >= len(b.Careers) {
		return Explanation{}, fmt.Errorf("%w: class %d", classifier.ErrDimension, class)
	}

	values := coalitionValues(cm, x, class)
	phi := shapley(values, n)

	out := Explanation{
		Career:        b.Careers[class],
		Baseline:      values[0],
		Prediction:    proba[class],
		Contributions: make([]model.FeatureContribution, n),
	}
	for i := range phi {
		out.Contributions[i] = model.FeatureContribution{
			Feature:      featureName(b.Features, i),
			Value:        v[i],
			Contribution: phi[i],
		}
	}
	sort.SliceStable(out.Contributions, func(a, c int) bool {
		return math.Abs(out.Contributions[a].Contribution) > math.Abs(out.Contributions[c].Contribution)
	})
	return out, nil
}

// coalitionValues evaluates every subset of features, indexed by bitmask.
func coalitionValues(cm classifier.ConditionalModel, x []float64, class int) []float64 {
	n := len(x)
	values := make([]float64, 1<<n)
	known := make([]bool, n)
	for mask := range values {
		for i := range known {
			known[i] = mask&(1<<i) != 0
		}
		values[mask] = cm.Expectation(x, known, class)
	}
	return values
}

// shapley combines coalition values with weights |S|!(n-|S|-1)!/n!.
func shapley(values []float64, n int) []float64 {
	weight := make([]float64, n)
	for s := range weight {
		weight[s] = factorial(s) * factorial(n-s-1) / factorial(n)
	}
	phi := make([]float64, n)
	for i := 0; i < n; i++ {
		bit := 1 << i
		for mask := range values {
			if mask&bit != 0 {
				continue
			}
			phi[i] += weight[popcount(mask)] * (values[mask|bit] - values[mask])
		}
	}
	return phi
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

func popcount(x int) int {
	c := 0
	for ; x != 0; x &= x - 1 {
		c++
	}
	return c
}

func featureName(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	if i < len(features.Names) {
		return features.Names[i]
	}
	return fmt.Sprintf("f%d", i)
}
