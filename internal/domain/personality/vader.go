package personality

import (
	"github.com/jonreiter/govader"

	"github.com/okian/careerlens/internal/domain/model"
)

// VaderLexicon scores sentiment with the VADER rule set.
type VaderLexicon struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderLexicon loads the embedded VADER lexicon.
func NewVaderLexicon() *VaderLexicon {
	return &VaderLexicon{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity implements Lexicon.
func (v *VaderLexicon) Polarity(text string) model.Polarity {
	s := v.sia.PolarityScores(text)
	return model.Polarity{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}
}
