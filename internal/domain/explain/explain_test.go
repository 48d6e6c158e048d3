package explain_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/explain"
	"github.com/okian/careerlens/internal/domain/features"
	. "github.com/smartystreets/goconvey/convey"
)

func stump() *classifier.Bundle {
	return &classifier.Bundle{
		Model: &classifier.Forest{NClasses: 2, Trees: []classifier.Tree{{Nodes: []classifier.Node{
			{Feature: features.Coding, Threshold: 5, Left: 1, Right: 2, Cover: 10, Value: []float64{0.68, 0.32}},
			{Left: -1, Right: -1, Cover: 6, Value: []float64{1, 0}},
			{Left: -1, Right: -1, Cover: 4, Value: []float64{0.2, 0.8}},
		}}}},
		Interests: []string{"AI/ML"},
		Careers:   []string{"Analyst", "Engineer"},
		Features:  classifier.FeatureNames(),
	}
}

func TestExplain(t *testing.T) {
	Convey("Given a single-split forest", t, func() {
		e := explain.New(classifier.New(stump()))

		Convey("When explaining a high-coding candidate", func() {
			ex, err := e.Explain(features.Vector{9, 90, 8, 5, 5, 0})

			Convey("Then the split feature carries the whole shift", func() {
				So(err, ShouldBeNil)
				So(ex.Career, ShouldEqual, "Engineer")
				So(ex.Baseline, ShouldAlmostEqual, 0.32, 1e-12)
				So(ex.Prediction, ShouldAlmostEqual, 0.8, 1e-12)
				So(ex.Contributions[0].Feature, ShouldEqual, "CodingSkill")
				So(ex.Contributions[0].Value, ShouldEqual, 8)
				So(ex.Contributions[0].Contribution, ShouldAlmostEqual, 0.48, 1e-12)
			})

			Convey("Then ties keep feature order", func() {
				names := make([]string, 0, len(ex.Contributions))
				for _, c := range ex.Contributions[1:] {
					So(c.Contribution, ShouldEqual, 0)
					names = append(names, c.Feature)
				}
				So(names, ShouldResemble, []string{
					"CGPA", "AptitudeScore", "CommunicationSkill", "LeadershipScore", "InterestEncoded",
				})
			})
		})
	})

	Convey("Given a trained forest", t, func() {
		samples := classifier.Synthetic(400, rand.New(rand.NewSource(11)))
		b, err := classifier.NewTrainer(classifier.WithTrees(8), classifier.WithMaxDepth(6)).Train(samples)
		So(err, ShouldBeNil)
		e := explain.New(classifier.New(b))
		norm := b.Normalizer()

		Convey("Then every explanation is additive and ordered", func() {
			for _, s := range samples[:20] {
				v, err := norm.Normalize(s.Input)
				So(err, ShouldBeNil)
				ex, err := e.Explain(v)
				So(err, ShouldBeNil)
				So(math.Abs(ex.Sum()-ex.Prediction), ShouldBeLessThan, 1e-9)
				So(ex.Contributions, ShouldHaveLength, features.Count)
				for i := 1; i < len(ex.Contributions); i++ {
					So(math.Abs(ex.Contributions[i-1].Contribution), ShouldBeGreaterThanOrEqualTo,
						math.Abs(ex.Contributions[i].Contribution))
				}
			}
		})

		Convey("Then the explained career matches the classifier", func() {
			v, _ := norm.Normalize(samples[0].Input)
			career, _, err := classifier.New(b).Classify(v)
			So(err, ShouldBeNil)
			ex, err := e.Explain(v)
			So(err, ShouldBeNil)
			So(ex.Career, ShouldEqual, career)
		})
	})

	Convey("Given a model without tree structure", t, func() {
		b := stump()
		b.Model = &classifier.Softmax{Weights: [][]float64{make([]float64, 6), make([]float64, 6)}, Bias: []float64{0, 0}}
		_, err := explain.New(classifier.New(b)).Explain(features.Vector{})
		So(errors.Is(err, explain.ErrExplainabilityUnavailable), ShouldBeTrue)
	})

	Convey("Given no model", t, func() {
		_, err := explain.New(classifier.New(nil)).Explain(features.Vector{})
		So(errors.Is(err, classifier.ErrModelUnavailable), ShouldBeTrue)
	})
}
