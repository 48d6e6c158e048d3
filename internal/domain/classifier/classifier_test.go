package classifier_test

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/features"
	"github.com/okian/careerlens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// stump splits on coding skill at 5.
func stump() *classifier.Bundle {
	return &classifier.Bundle{
		Model: &classifier.Forest{NClasses: 2, Trees: []classifier.Tree{{Nodes: []classifier.Node{
			{Feature: features.Coding, Threshold: 5, Left: 1, Right: 2, Cover: 10, Value: []float64{0.68, 0.32}},
			{Left: -1, Right: -1, Cover: 6, Value: []float64{1, 0}},
			{Left: -1, Right: -1, Cover: 4, Value: []float64{0.2, 0.8}},
		}}}},
		Interests: []string{"AI/ML", "Data Science"},
		Careers:   []string{"Analyst", "Engineer"},
		Features:  classifier.FeatureNames(),
	}
}

func TestClassify(t *testing.T) {
	Convey("Given a classifier over a single-split forest", t, func() {
		c := classifier.New(stump())

		Convey("When coding is low", func() {
			career, conf, err := c.Classify(features.Vector{8, 80, 3, 5, 5, 0})
			So(err, ShouldBeNil)
			So(career, ShouldEqual, "Analyst")
			So(conf, ShouldEqual, 100)
		})

		Convey("When coding is high", func() {
			career, conf, err := c.Classify(features.Vector{8, 80, 8, 5, 5, 0})
			So(err, ShouldBeNil)
			So(career, ShouldEqual, "Engineer")
			So(conf, ShouldEqual, 80)
		})
	})

	Convey("Given a classifier without a bundle", t, func() {
		c := classifier.New(nil)
		_, _, err := c.Classify(features.Vector{})
		So(errors.Is(err, classifier.ErrModelUnavailable), ShouldBeTrue)
		So(c.Available(), ShouldBeFalse)
	})

	Convey("Given a softmax model", t, func() {
		b := stump()
		b.Model = &classifier.Softmax{
			Weights: [][]float64{make([]float64, 6), {0, 0, 1, 0, 0, 0}},
			Bias:    []float64{0, -5},
		}
		c := classifier.New(b)

		Convey("Then probabilities sum to one", func() {
			p, err := c.Probabilities(features.Vector{0, 0, 5, 0, 0, 0})
			So(err, ShouldBeNil)
			So(p[0]+p[1], ShouldAlmostEqual, 1, 1e-12)
			So(p[0], ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("Then the confidence is within range", func() {
			_, conf, err := c.Classify(features.Vector{0, 0, 9, 0, 0, 0})
			So(err, ShouldBeNil)
			So(conf, ShouldBeBetweenOrEqual, 0, 100)
		})
	})
}

func TestExpectation(t *testing.T) {
	Convey("Given the single-split forest", t, func() {
		f := stump().Model.(*classifier.Forest)
		x := []float64{0, 0, 8, 0, 0, 0}

		Convey("When nothing is known the cover-weighted mean is returned", func() {
			v := f.Expectation(x, make([]bool, 6), 1)
			So(v, ShouldAlmostEqual, 0.32, 1e-12)
		})

		Convey("When the split feature is known the path is followed", func() {
			known := make([]bool, 6)
			known[features.Coding] = true
			So(f.Expectation(x, known, 1), ShouldAlmostEqual, 0.8, 1e-12)
		})
	})
}

func TestArtifact(t *testing.T) {
	Convey("Given a bundle", t, func() {
		b := stump()
		b.Scaler = &classifier.Scaler{Mean: make([]float64, 6), Scale: []float64{1, 1, 1, 1, 1, 1}}

		Convey("When it is saved and loaded", func() {
			path := filepath.Join(t.TempDir(), "model.json")
			So(classifier.Save(path, b), ShouldBeNil)
			got, err := classifier.Load(path)

			Convey("Then predictions are unchanged", func() {
				So(err, ShouldBeNil)
				So(got.Careers, ShouldResemble, b.Careers)
				So(got.Model.Kind(), ShouldEqual, classifier.KindForest)
				_, want := b.Model.Predict([]float64{0, 0, 8, 0, 0, 0})
				_, have := got.Model.Predict([]float64{0, 0, 8, 0, 0, 0})
				So(have, ShouldResemble, want)
			})
		})

		Convey("When a softmax bundle round-trips", func() {
			b.Model = &classifier.Softmax{Weights: [][]float64{make([]float64, 6), make([]float64, 6)}, Bias: []float64{0, 0}}
			var buf bytes.Buffer
			So(classifier.Encode(&buf, b), ShouldBeNil)
			got, err := classifier.Decode(&buf)
			So(err, ShouldBeNil)
			So(got.Model.Kind(), ShouldEqual, classifier.KindSoftmax)
		})

		Convey("When the kind is unknown", func() {
			_, err := classifier.Decode(strings.NewReader(`{"kind":"svm","features":["a"],"interests":["x"],"careers":["y"]}`))
			So(errors.Is(err, classifier.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the forest payload is missing", func() {
			_, err := classifier.Decode(strings.NewReader(`{"kind":"forest","features":["a"],"interests":["x"],"careers":["y"]}`))
			So(errors.Is(err, classifier.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When node values do not match the careers", func() {
			b.Careers = []string{"only"}
			var buf bytes.Buffer
			So(classifier.Encode(&buf, b), ShouldBeNil)
			_, err := classifier.Decode(&buf)
			So(errors.Is(err, classifier.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the artifact is narrower than the feature vector", func() {
			b.Features = classifier.FeatureNames()[:3]
			b.Scaler = &classifier.Scaler{Mean: make([]float64, 3), Scale: []float64{1, 1, 1}}
			var buf bytes.Buffer
			So(classifier.Encode(&buf, b), ShouldBeNil)

			_, err := classifier.Decode(&buf)
			So(errors.Is(err, classifier.ErrInvalidArtifact), ShouldBeTrue)

			Convey("And a bundle built in code is refused at prediction time", func() {
				clf := classifier.New(b)
				So(func() { _, _, err = clf.Classify(features.Vector{7, 80, 8, 5, 5, 0}) }, ShouldNotPanic)
				So(errors.Is(err, classifier.ErrDimension), ShouldBeTrue)
			})
		})

		Convey("When the document is not JSON", func() {
			_, err := classifier.Decode(strings.NewReader("not json"))
			So(errors.Is(err, classifier.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When encoding without a model", func() {
			So(errors.Is(classifier.Encode(&bytes.Buffer{}, &classifier.Bundle{}), classifier.ErrModelUnavailable), ShouldBeTrue)
		})
	})
}

func TestSynthetic(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		a := classifier.Synthetic(200, rand.New(rand.NewSource(7)))
		b := classifier.Synthetic(200, rand.New(rand.NewSource(7)))

		Convey("Then it is reproducible", func() {
			So(a, ShouldResemble, b)
		})

		Convey("Then every sample is valid and labelled by the rules", func() {
			for _, s := range a {
				So(s.Input.Validate(), ShouldBeNil)
				So(s.Input.CGPA, ShouldBeBetweenOrEqual, 2.5, 10)
				So(s.Career, ShouldEqual, classifier.Label(s.Input))
			}
		})
	})

	Convey("Given the labelling rules", t, func() {
		in := model.RawAssessmentInput{CGPA: 8, Aptitude: 90, Coding: 8, Communication: 8, Leadership: 5}

		in.InterestDomain = "AI/ML"
		So(classifier.Label(in), ShouldEqual, "AI Engineer")
		in.InterestDomain = "Data Science"
		So(classifier.Label(in), ShouldEqual, "Data Scientist")
		in.InterestDomain = "Software Engineering"
		So(classifier.Label(in), ShouldEqual, "Software Developer")
		in.Coding = 5
		So(classifier.Label(in), ShouldEqual, classifier.GeneralIT)
	})
}

func TestTrainer(t *testing.T) {
	Convey("Given synthetic training data", t, func() {
		samples := classifier.Synthetic(600, rand.New(rand.NewSource(1)))

		Convey("When a forest is trained", func() {
			b, err := classifier.NewTrainer(classifier.WithTrees(15), classifier.WithSeed(3)).Train(samples)

			Convey("Then the bundle is complete and accurate", func() {
				So(err, ShouldBeNil)
				So(b.Model.Kind(), ShouldEqual, classifier.KindForest)
				So(b.Interests, ShouldResemble, []string{
					"AI/ML", "Business Analyst", "Cyber Security", "Data Science",
					"Software Engineering", "UI/UX Design", "Web Development",
				})
				So(b.Careers, ShouldContain, classifier.GeneralIT)
				So(b.Features, ShouldResemble, classifier.FeatureNames())
				So(b.Accuracy, ShouldBeGreaterThan, 0.6)
			})

			Convey("Then training is reproducible", func() {
				again, err := classifier.NewTrainer(classifier.WithTrees(15), classifier.WithSeed(3)).Train(samples)
				So(err, ShouldBeNil)
				var x, y bytes.Buffer
				So(classifier.Encode(&x, b), ShouldBeNil)
				So(classifier.Encode(&y, again), ShouldBeNil)
				So(x.String(), ShouldEqual, y.String())
			})

			Convey("Then the artifact survives a round trip", func() {
				var buf bytes.Buffer
				So(classifier.Encode(&buf, b), ShouldBeNil)
				_, err := classifier.Decode(&buf)
				So(err, ShouldBeNil)
			})
		})

		Convey("When a softmax model is trained", func() {
			b, err := classifier.NewTrainer(
				classifier.WithKind(classifier.KindSoftmax),
				classifier.WithEpochs(50),
			).Train(samples)
			So(err, ShouldBeNil)
			So(b.Model.Kind(), ShouldEqual, classifier.KindSoftmax)
			So(b.Accuracy, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("When the kind is unknown", func() {
			_, err := classifier.NewTrainer(classifier.WithKind("svm")).Train(samples)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given no samples", t, func() {
		_, err := classifier.NewTrainer().Train(nil)
		So(errors.Is(err, classifier.ErrEmptyDataset), ShouldBeTrue)
	})
}
