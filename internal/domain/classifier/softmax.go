package classifier

import "math"

// Softmax is a multinomial logistic regression: one weight row per class.
type Softmax struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// Predict implements Model.
func (s *Softmax) Predict(x []float64) (int, []float64) {
	z := make([]float64, len(s.Weights))
	maxZ := math.Inf(-1)
	for c, w := range s.Weights {
		v := s.Bias[c]
		for j, wj := range w {
			v += wj * x[j]
		}
		z[c] = v
		if v > maxZ {
			maxZ = v
		}
	}
	var sum float64
	for c := range z {
		z[c] = math.Exp(z[c] - maxZ)
		sum += z[c]
	}
	for c := range z {
		z[c] /= sum
	}
	return argmax(z), z
}

// Classes implements Model.
func (s *Softmax) Classes() int { return len(s.Weights) }

// Kind implements Model.
func (s *Softmax) Kind() string { return KindSoftmax }
