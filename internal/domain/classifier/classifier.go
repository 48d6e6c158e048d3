package classifier

import (
	"fmt"

	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
)

// Bundle is everything produced by one training run.
type Bundle struct {
	Model     Model
	Scaler    *Scaler
	Interests []string
	Careers   []string
	Features  []string
	Accuracy  float64
}

// Prepare scales a feature vector into the model's input space.
func (b *Bundle) Prepare(v features.Vector) []float64 {
	return b.Scaler.Transform(v.Slice())
}

// Normalizer returns a normalizer over the bundle's interest vocabulary.
func (b *Bundle) Normalizer() *features.Normalizer {
	return features.NewNormalizer(b.Interests)
}

// Classifier maps feature vectors to a career label with confidence.
type Classifier struct {
	bundle *Bundle
}

// New wraps bundle. A nil bundle yields a classifier that always reports
// ErrModelUnavailable.
func New(bundle *Bundle) *Classifier {
	return &Classifier{bundle: bundle}
}

// Bundle returns the underlying artifacts or nil.
func (c *Classifier) Bundle() *Bundle { return c.bundle }

// Available reports whether a model is loaded.
func (c *Classifier) Available() bool {
	return c.bundle != nil && c.bundle.Model != nil
}

// Probabilities returns the per-career probabilities for v.
func (c *Classifier) Probabilities(v features.Vector) ([]float64, error) {
	if !c.Available() {
		return nil, ErrModelUnavailable
	}
	if len(c.bundle.Features) != features.Count {
		return nil, fmt.Errorf("%w: bundle has %d features, want %d",
			ErrDimension, len(c.bundle.Features), features.Count)
	}
	_, proba := c.bundle.Model.Predict(c.bundle.Prepare(v))
	if len(proba) != len(c.bundle.Careers) {
		return nil, fmt.Errorf("%w: model has %d classes, bundle has %d careers",
			ErrDimension, len(proba), len(c.bundle.Careers))
	}
	return proba, nil
}

// Classify returns the predicted career and confidence in [0,100].
func (c *Classifier) Classify(v features.Vector) (string, float64, error) {
	proba, err := c.Probabilities(v)
	if err != nil {
		return "", 0, err
	}
	idx := argmax(proba)
	return c.bundle.Careers[idx], model.Round2(100 * proba[idx]), nil
}
