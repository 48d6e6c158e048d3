package salary_test

import (
	"testing"

	"github.com/okian/careerlens/internal/domain/salary"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimate(t *testing.T) {
	Convey("Given an estimator over the default catalog", t, func() {
		e := salary.NewEstimator(taxonomy.Default())

		Convey("When coding skill is neutral", func() {
			est := e.Estimate("AI Engineer", 5)

			Convey("Then the base salary is returned", func() {
				So(est.Salary, ShouldEqual, 80000)
			})

			Convey("Then the projection compounds at 10%", func() {
				So(est.Projection, ShouldResemble, [salary.ProjectionYears]float64{88000, 96800, 106480, 117128, 128840.8})
			})
		})

		Convey("When coding skill is high", func() {
			So(e.Estimate("Data Scientist", 9).Salary, ShouldEqual, 105000)
		})

		Convey("When coding skill is low", func() {
			So(e.Estimate("Web Developer", 1).Salary, ShouldEqual, 36000)
		})

		Convey("When the career is unknown", func() {
			So(e.Estimate("Astronaut", 5).Salary, ShouldEqual, taxonomy.DefaultBaseSalary)
			So(e.Estimate(taxonomy.GenericQuestion, 7).Salary, ShouldEqual, 60000)
		})

		Convey("When estimated twice", func() {
			So(e.Estimate("UI/UX Designer", 6), ShouldResemble, e.Estimate("UI/UX Designer", 6))
		})

		Convey("Then projections are strictly increasing", func() {
			p := e.Estimate("Business Analyst", 3).Projection
			for i := 1; i < len(p); i++ {
				So(p[i], ShouldBeGreaterThan, p[i-1])
			}
		})
	})
}
