package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/careerlens/internal/cli"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

func execute(stdin string, args ...string) (string, error) {
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainAndAssess(t *testing.T) {
	Convey("Given a model trained by careerctl", t, func() {
		path := filepath.Join(t.TempDir(), "model.json")
		out, err := execute("", "train", "--out", path, "--samples", "300", "--trees", "5", "--max-depth", "6")
		So(err, ShouldBeNil)

		var summary map[string]any
		So(json.Unmarshal([]byte(out), &summary), ShouldBeNil)
		So(summary["kind"], ShouldEqual, "forest")
		_, statErr := os.Stat(path)
		So(statErr, ShouldBeNil)

		Convey("When an assessment is given as flags", func() {
			out, err := execute("", "--model", path, "assess",
				"--cgpa", "9.1", "--aptitude", "92", "--coding", "9",
				"--communication", "6", "--leadership", "5", "--interest", "AI/ML")

			Convey("Then a completed result is printed", func() {
				So(err, ShouldBeNil)
				var got struct {
					Status string                 `json:"status"`
					Result model.AssessmentResult `json:"result"`
				}
				So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
				So(got.Status, ShouldEqual, model.StatusCompleted)
				So(got.Result.PredictedCareer, ShouldNotBeEmpty)
				So(got.Result.PredictedSalary, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When an assessment is piped as JSON", func() {
			body := `{"cgpa":7.5,"aptitude":70,"coding":5,"communication":8,"leadership":7,"interest":"Business Analyst"}`
			out, err := execute(body, "--model", path, "assess", "--file", "-")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `"status"`)
		})

		Convey("When the interest was never seen in training", func() {
			out, err := execute("", "--model", path, "assess",
				"--cgpa", "8", "--aptitude", "80", "--coding", "5",
				"--communication", "5", "--leadership", "5", "--interest", "Astrology")

			Convey("Then the run is degraded, not failed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, model.StatusDegraded)
			})
		})

		Convey("When the assessment is invalid", func() {
			_, err := execute("", "--model", path, "assess", "--cgpa", "11", "--interest", "AI/ML")
			So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given a missing model file", t, func() {
		_, err := execute("", "--model", "/nonexistent/model.json", "assess", "--interest", "AI/ML")
		So(err, ShouldNotBeNil)
	})

	Convey("Given train without an output path", t, func() {
		_, err := execute("", "train")
		So(err, ShouldNotBeNil)
	})
}

func TestCoachingCommands(t *testing.T) {
	Convey("Given the coaching commands", t, func() {
		Convey("Resume analysis reports every required skill", func() {
			skills := taxonomy.Default().RequiredSkills("Data Scientist")
			out, err := execute("Skills: "+strings.Join(skills, ", "), "resume", "--career", "Data Scientist", "--file", "-")
			So(err, ShouldBeNil)
			var report model.SkillGapReport
			So(json.Unmarshal([]byte(out), &report), ShouldBeNil)
			So(report.MatchScore, ShouldEqual, 100)
			So(report.MissingSkills, ShouldBeEmpty)
		})

		Convey("Resume analysis without text fails", func() {
			_, err := execute("", "resume", "--career", "Data Scientist")
			So(errors.Is(err, cli.ErrMissingInput), ShouldBeTrue)
		})

		Convey("Questions are drawn from the catalog and repeat for a seed", func() {
			first, err := execute("", "--seed", "3", "interview", "question", "--career", "AI Engineer")
			So(err, ShouldBeNil)
			second, _ := execute("", "--seed", "3", "interview", "question", "--career", "AI Engineer")
			So(first, ShouldEqual, second)

			var q map[string]string
			So(json.Unmarshal([]byte(first), &q), ShouldBeNil)
			So(taxonomy.Default().Questions("AI Engineer"), ShouldContain, q["question"])
		})

		Convey("Answers are scored", func() {
			out, err := execute("", "interview", "answer", "--career", "Web Developer",
				"--question", "Explain closures", "--text", strings.Repeat("word ", 30))
			So(err, ShouldBeNil)
			var turn model.InterviewTurn
			So(json.Unmarshal([]byte(out), &turn), ShouldBeNil)
			So(turn.Career, ShouldEqual, "Web Developer")
			So(turn.WordCount, ShouldEqual, 30)
		})

		Convey("Personality returns all five traits", func() {
			out, err := execute("", "personality", "--text", "I love exploring new ideas and working with people.")
			So(err, ShouldBeNil)
			var reading model.PersonalityReading
			So(json.Unmarshal([]byte(out), &reading), ShouldBeNil)
			So(reading.Traits, ShouldHaveLength, 5)
			So(reading.DominantTrait, ShouldNotBeEmpty)
		})

		Convey("Market falls back for unknown careers", func() {
			out, err := execute("", "market", "--career", "Astronaut")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "General Skill Development")
		})
	})
}
