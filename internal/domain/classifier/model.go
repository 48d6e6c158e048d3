// Package classifier predicts a career label from a feature vector and holds
// the trained artifacts (model, scaler and label vocabularies).
package classifier

// Model family tags used in artifacts.
const (
	KindForest  = "forest"
	KindSoftmax = "softmax"
)

// Model is a trained multi-class predictor over scaled features.
type Model interface {
	// Predict returns the winning class index and the per-class probabilities.
	Predict(x []float64) (int, []float64)
	// Classes is the number of output classes.
	Classes() int
	// Kind names the model family.
	Kind() string
}

// ConditionalModel can evaluate its expected output when only some features
// are known. Tree ensembles implement it by following cover weights down the
// branches whose split feature is unknown.
type ConditionalModel interface {
	Model
	Expectation(x []float64, known []bool, class int) float64
}

func argmax(p []float64) int {
	best := 0
	for i := 1; i < len(p); i++ {
		if p[i] > p[best] {
			best = i
		}
	}
	return best
}
