// Package personality maps the sentiment of a self-description onto five
// pseudo-personality traits.
package personality

import (
	"math"
	"strings"

	"github.com/okian/careerlens/internal/domain/model"
)

// Trait names in reporting order. Ties resolve to the earliest.
const (
	Openness           = "Openness"
	Conscientiousness  = "Conscientiousness"
	Extraversion       = "Extraversion"
	Agreeableness      = "Agreeableness"
	EmotionalStability = "Emotional Stability"
)

// Traits lists trait names in reporting order.
var Traits = []string{Openness, Conscientiousness, Extraversion, Agreeableness, EmotionalStability}

// Lexicon scores the sentiment of text.
type Lexicon interface {
	Polarity(text string) model.Polarity
}

// Analyzer derives personality readings.
type Analyzer struct {
	lex Lexicon
}

// NewAnalyzer uses lex for sentiment.
func NewAnalyzer(lex Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Analyze scores text. Blank text yields model.ErrEmptyInput.
func (a *Analyzer) Analyze(text string) (model.PersonalityReading, error) {
	if strings.TrimSpace(text) == "" {
		return model.PersonalityReading{}, model.ErrEmptyInput
	}
	p := a.lex.Polarity(text)
	return Reading(p), nil
}

// Reading maps a polarity onto trait scores on a 0-10 scale.
func Reading(p model.Polarity) model.PersonalityReading {
	scores := []float64{
		(p.Positive*0.6 + p.Neutral*0.4) * 10,
		(p.Neutral*0.7 + p.Positive*0.3) * 10,
		(p.Positive*0.8 + p.Compound*0.2) * 10,
		(p.Positive * 0.9) * 10,
		(1 - math.Abs(p.Compound-0.5)) * 10,
	}
	r := model.PersonalityReading{
		Traits:    make([]model.TraitScore, len(Traits)),
		Sentiment: p,
	}
	best := 0
	for i, name := range Traits {
		r.Traits[i] = model.TraitScore{Trait: name, Score: model.Round2(scores[i])}
		if r.Traits[i].Score > r.Traits[best].Score {
			best = i
		}
	}
	r.DominantTrait = Traits[best]
	return r
}
