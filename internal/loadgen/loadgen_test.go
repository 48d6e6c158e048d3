package loadgen_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/careerlens/internal/adapters/http/api"
	app "github.com/okian/careerlens/internal/app"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/loadgen"
	"github.com/okian/careerlens/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generated batch", t, func() {
		subs := loadgen.Generate(20, 0.25, 1)

		Convey("Then duplicates resend the first submissions", func() {
			So(subs, ShouldHaveLength, 25)
			So(subs[20].SubmissionID, ShouldEqual, subs[0].SubmissionID)
			So(subs[24].SubmissionID, ShouldEqual, subs[4].SubmissionID)
			for _, s := range subs {
				So(s.Validate(), ShouldBeNil)
			}
		})

		Convey("And the inputs repeat for a seed", func() {
			again := loadgen.Generate(20, 0, 1)
			So(again[3].RawAssessmentInput, ShouldResemble, subs[3].RawAssessmentInput)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := app.New(
			app.WithWorkerCount(4),
			app.WithTrainSamples(300),
			app.WithTrainerOptions(classifier.WithTrees(5), classifier.WithMaxDepth(6)),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop(ctx)

		server := api.NewServer(svc)
		defer server.Close()
		mux := http.NewServeMux()
		server.Register(mux)
		ts := httptest.NewServer(server.Handler(mux))
		defer ts.Close()

		Convey("When a load run completes", func() {
			out := filepath.Join(t.TempDir(), "subs.json")
			stats, err := loadgen.Run(ctx, loadgen.Config{
				BaseURL:        ts.URL,
				Submissions:    20,
				DuplicateRatio: 0.25,
				Workers:        4,
				PollInterval:   20 * time.Millisecond,
				SettleTimeout:  20 * time.Second,
				Seed:           7,
				OutputFile:     out,
			}, logger.Get())

			Convey("Then every submission is accounted for", func() {
				So(err, ShouldBeNil)
				So(stats.Submitted, ShouldEqual, 25)
				So(stats.Accepted, ShouldEqual, 20)
				So(stats.Duplicate, ShouldEqual, 5)
				So(stats.Settled, ShouldEqual, 20)
				So(stats.ByStatus[model.StatusPending], ShouldEqual, 0)
				So(stats.Analytics, ShouldBeGreaterThanOrEqualTo,
					stats.ByStatus[model.StatusCompleted]+stats.ByStatus[model.StatusDegraded])
				_, statErr := os.Stat(out)
				So(statErr, ShouldBeNil)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		_, err := loadgen.Run(context.Background(), loadgen.Config{BaseURL: ts.URL, Submissions: 1}, logger.Get())
		So(errors.Is(err, loadgen.ErrUnhealthy), ShouldBeTrue)
	})
}
