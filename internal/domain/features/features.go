// Package features turns raw candidate input into the numeric vector the
// classifier consumes.
package features

import (
	"fmt"

	"github.com/okian/careerlens/internal/domain/model"
)

// Positions inside a Vector.
const (
	CGPA = iota
	Aptitude
	Coding
	Communication
	Leadership
	Interest
	Count
)

// Names lists feature names in vector order.
var Names = [Count]string{
	"CGPA",
	"AptitudeScore",
	"CodingSkill",
	"CommunicationSkill",
	"LeadershipScore",
	"InterestEncoded",
}

// Vector is a normalized input, ordered as Names.
type Vector [Count]float64

// Slice returns a copy of v as a slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Count)
	copy(out, v[:])
	return out
}

// Normalizer maps interest labels to integer codes. It never mutates state
// after construction.
type Normalizer struct {
	codes map[string]int
	vocab []string
}

// NewNormalizer builds a normalizer over vocab. A label's code is its index.
func NewNormalizer(vocab []string) *Normalizer {
	n := &Normalizer{
		codes: make(map[string]int, len(vocab)),
		vocab: append([]string(nil), vocab...),
	}
	for i, v := range vocab {
		if _, ok := n.codes[v]; !ok {
			n.codes[v] = i
		}
	}
	return n
}

// Vocabulary returns the interest labels in code order.
func (n *Normalizer) Vocabulary() []string {
	return append([]string(nil), n.vocab...)
}

// Encode returns the code for an interest label.
func (n *Normalizer) Encode(interest string) (int, error) {
	code, ok := n.codes[interest]
	if !ok {
		return 0, &UnknownCategoryError{Value: interest}
	}
	return code, nil
}

// Normalize validates in and produces its feature vector.
func (n *Normalizer) Normalize(in model.RawAssessmentInput) (Vector, error) {
	if err := in.Validate(); err != nil {
		return Vector{}, err
	}
	code, err := n.Encode(in.InterestDomain)
	if err != nil {
		return Vector{}, err
	}
	return Vector{
		CGPA:          in.CGPA,
		Aptitude:      float64(in.Aptitude),
		Coding:        float64(in.Coding),
		Communication: float64(in.Communication),
		Leadership:    float64(in.Leadership),
		Interest:      float64(code),
	}, nil
}

// UnknownCategoryError carries the interest label that was not recognized.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownCategory, e.Value)
}

// Unwrap lets errors.Is match ErrUnknownCategory.
func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }
