package classifier

import "math"

// Scaler standardizes features to zero mean and unit variance.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column mean and population standard deviation.
// Constant columns get a scale of 1.
func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	d := len(rows[0])
	s := &Scaler{Mean: make([]float64, d), Scale: make([]float64, d)}
	n := float64(len(rows))
	for _, r := range rows {
		for j, v := range r {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, r := range rows {
		for j, v := range r {
			dv := v - s.Mean[j]
			s.Scale[j] += dv * dv
		}
	}
	for j := range s.Scale {
		s.Scale[j] = math.Sqrt(s.Scale[j] / n)
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	return s
}

// Transform returns a standardized copy of x. A nil scaler is the identity.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if s == nil || len(s.Mean) == 0 {
		return out
	}
	for j := range out {
		out[j] = (out[j] - s.Mean[j]) / s.Scale[j]
	}
	return out
}
