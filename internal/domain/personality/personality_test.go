package personality_test

import (
	"errors"
	"testing"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/personality"
	. "github.com/smartystreets/goconvey/convey"
)

type fixedLexicon model.Polarity

func (f fixedLexicon) Polarity(string) model.Polarity { return model.Polarity(f) }

func TestAnalyze(t *testing.T) {
	Convey("Given an analyzer with a fixed lexicon", t, func() {
		a := personality.NewAnalyzer(fixedLexicon{Positive: 0.5, Neutral: 0.5, Compound: 0.9})

		Convey("When analyzing text", func() {
			r, err := a.Analyze("I enjoy working with people")

			Convey("Then traits follow the polarity mapping in order", func() {
				So(err, ShouldBeNil)
				So(r.Traits, ShouldResemble, []model.TraitScore{
					{Trait: personality.Openness, Score: 5},
					{Trait: personality.Conscientiousness, Score: 5},
					{Trait: personality.Extraversion, Score: 5.8},
					{Trait: personality.Agreeableness, Score: 4.5},
					{Trait: personality.EmotionalStability, Score: 6},
				})
				So(r.DominantTrait, ShouldEqual, personality.EmotionalStability)
				So(r.Sentiment.Compound, ShouldEqual, 0.9)
			})
		})

		Convey("When the text is blank", func() {
			_, err := a.Analyze(" \n")
			So(errors.Is(err, model.ErrEmptyInput), ShouldBeTrue)
		})
	})

	Convey("Given tied trait scores", t, func() {
		// Openness, Conscientiousness and Emotional Stability all score 5.
		r := personality.Reading(model.Polarity{Positive: 0.5, Neutral: 0.5})

		Convey("Then the earliest trait wins", func() {
			So(r.DominantTrait, ShouldEqual, personality.Openness)
		})
	})

	Convey("Given a neutral reading", t, func() {
		r := personality.Reading(model.Polarity{Neutral: 1, Compound: 0.5})
		So(r.DominantTrait, ShouldEqual, personality.EmotionalStability)
		So(r.Traits[1].Score, ShouldEqual, 7)
	})

	Convey("Given the VADER lexicon", t, func() {
		a := personality.NewAnalyzer(personality.NewVaderLexicon())

		Convey("When the text is clearly positive", func() {
			r, err := a.Analyze("I love solving problems and I am very happy helping my great team.")
			So(err, ShouldBeNil)
			So(r.Sentiment.Compound, ShouldBeGreaterThan, 0)
			So(r.Sentiment.Positive, ShouldBeGreaterThan, r.Sentiment.Negative)
		})

		Convey("When the text is clearly negative", func() {
			r, err := a.Analyze("I hate deadlines and I am terrible at meetings.")
			So(err, ShouldBeNil)
			So(r.Sentiment.Compound, ShouldBeLessThan, 0)
			So(r.Traits, ShouldHaveLength, len(personality.Traits))
			// stability is 5 at a zero compound and drops as it turns negative
			stability, ok := r.Trait(personality.EmotionalStability)
			So(ok, ShouldBeTrue)
			So(stability, ShouldBeLessThan, 5)
		})
	})
}
