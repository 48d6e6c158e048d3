package interview_test

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/okian/careerlens/internal/domain/interview"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestScoreAnswer(t *testing.T) {
	Convey("Given a scorer", t, func() {
		s := interview.NewScorer()

		cases := []struct {
			n        int
			score    float64
			feedback string
		}{
			{1, 30, interview.ShortFeedback},
			{9, 30, interview.ShortFeedback},
			{10, 60, interview.MediumFeedback},
			{29, 60, interview.MediumFeedback},
			{30, 85, interview.FullFeedback},
			{200, 85, interview.FullFeedback},
		}
		for _, tc := range cases {
			turn, err := s.ScoreAnswer("q", words(tc.n))
			So(err, ShouldBeNil)
			So(turn.WordCount, ShouldEqual, tc.n)
			So(turn.Score, ShouldEqual, tc.score)
			So(turn.Feedback, ShouldEqual, tc.feedback)
		}

		Convey("When words are separated by mixed whitespace", func() {
			turn, err := s.ScoreAnswer("q", "one\ttwo\n\nthree   four")
			So(err, ShouldBeNil)
			So(turn.WordCount, ShouldEqual, 4)
			So(turn.Question, ShouldEqual, "q")
		})

		Convey("When the answer is blank", func() {
			_, err := s.ScoreAnswer("q", "   ")
			So(errors.Is(err, model.ErrEmptyInput), ShouldBeTrue)
		})
	})
}

func TestGenerator(t *testing.T) {
	Convey("Given a generator over the default catalog", t, func() {
		catalog := taxonomy.Default()

		Convey("When the seed is fixed", func() {
			a := interview.NewGenerator(catalog, rand.NewSource(5))
			b := interview.NewGenerator(catalog, rand.NewSource(5))

			Convey("Then the sequence repeats", func() {
				for i := 0; i < 10; i++ {
					So(a.Question("Web Developer"), ShouldEqual, b.Question("Web Developer"))
				}
			})
		})

		Convey("When many questions are drawn", func() {
			g := interview.NewGenerator(catalog, rand.NewSource(1))
			seen := map[string]bool{}
			for i := 0; i < 200; i++ {
				seen[g.Question("Data Scientist")] = true
			}

			Convey("Then every question comes from the pool", func() {
				So(len(seen), ShouldEqual, len(catalog.Questions("Data Scientist")))
				for q := range seen {
					So(catalog.Questions("Data Scientist"), ShouldContain, q)
				}
			})
		})

		Convey("When the career is unknown", func() {
			g := interview.NewGenerator(catalog, rand.NewSource(1))
			So(g.Question("Astronaut"), ShouldEqual, taxonomy.GenericQuestion)
		})

		Convey("When used concurrently", func() {
			g := interview.NewGenerator(catalog, rand.NewSource(1))
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						g.Question("AI Engineer")
					}
				}()
			}
			wg.Wait()
			So(g.Question("AI Engineer"), ShouldNotBeEmpty)
		})
	})
}
