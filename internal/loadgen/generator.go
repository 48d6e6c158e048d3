package loadgen

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/okian/careerlens/internal/domain/classifier"
)

// Generate draws n submissions from the synthetic training distribution and
// appends a resend of the first ratio*n of them.
func Generate(n int, ratio float64, seed int64) []Submission {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic load only
	samples := classifier.Synthetic(n, rng)
	out := make([]Submission, 0, n+int(float64(n)*ratio))
	for _, s := range samples {
		out = append(out, Submission{
			SubmissionID:       uuid.NewString(),
			CandidateID:        uuid.NewString(),
			RawAssessmentInput: s.Input,
		})
	}
	dups := int(float64(n) * ratio)
	for i := 0; i < dups && i < n; i++ {
		out = append(out, out[i])
	}
	return out
}
