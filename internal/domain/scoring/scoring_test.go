package scoring_test

import (
	"testing"

	"github.com/okian/careerlens/internal/domain/model"
	scoring "github.com/okian/careerlens/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculator_Compute(t *testing.T) {
	Convey("Given a calculator with default weights", t, func() {
		calc := scoring.NewCalculator()

		Convey("When scoring a strong candidate", func() {
			in := model.RawAssessmentInput{CGPA: 8.5, Aptitude: 85, Coding: 9, Communication: 7, Leadership: 6}
			s := calc.Compute(in)

			Convey("Then intelligence follows the weighted sum", func() {
				// 170*0.4 + 85*0.3 + 90*0.3
				So(s.Intelligence, ShouldEqual, 120.5)
			})

			Convey("Then readiness averages the four parts", func() {
				// (90 + 70 + 60 + 212.5) / 4 = 108.125, a tie that rounds to even
				So(s.Readiness, ShouldEqual, 108.12)
			})
		})

		Convey("When readiness lands exactly on a half cent", func() {
			in := model.RawAssessmentInput{CGPA: 8.5, Aptitude: 80, Coding: 8, Communication: 8, Leadership: 8}

			Convey("Then it rounds half to even", func() {
				// (80 + 80 + 80 + 212.5) / 4 = 113.125
				So(calc.Readiness(in), ShouldEqual, 113.12)
			})
		})

		Convey("When scoring the minimum input", func() {
			in := model.RawAssessmentInput{CGPA: 0, Aptitude: 0, Coding: 1, Communication: 1, Leadership: 1}
			s := calc.Compute(in)
			So(s.Intelligence, ShouldEqual, 3)
			So(s.Readiness, ShouldEqual, 7.5)
		})

		Convey("When the same input is scored twice", func() {
			in := model.RawAssessmentInput{CGPA: 6.37, Aptitude: 71, Coding: 4, Communication: 8, Leadership: 3}
			So(calc.Compute(in), ShouldResemble, calc.Compute(in))
		})

		Convey("When values would exceed 100", func() {
			in := model.RawAssessmentInput{CGPA: 10, Aptitude: 100, Coding: 10, Communication: 10, Leadership: 10}
			s := calc.Compute(in)

			Convey("Then no clamping is applied", func() {
				So(s.Intelligence, ShouldEqual, 140)
				So(s.Readiness, ShouldEqual, 137.5)
			})
		})
	})

	Convey("Given custom intelligence weights", t, func() {
		calc := scoring.NewCalculator(scoring.WithIntelligenceWeights(0.5, 0.25, 0.25))
		in := model.RawAssessmentInput{CGPA: 5, Aptitude: 40, Coding: 4, Communication: 4, Leadership: 4}
		So(calc.Intelligence(in), ShouldEqual, 70)

		Convey("And non-positive weights are ignored", func() {
			calc := scoring.NewCalculator(scoring.WithIntelligenceWeights(0, 1, 1))
			So(calc.Intelligence(in), ShouldEqual, scoring.NewCalculator().Intelligence(in))
		})
	})
}
