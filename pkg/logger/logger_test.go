package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		var buf bytes.Buffer
		defer func() { _ = Init() }()

		Convey("When initialized with JSON output", func() {
			So(Init(WithFormat("json"), WithWriter(&buf)), ShouldBeNil)
			Named("service").Info(context.Background(), "assessment stored",
				String("id", "a-1"), Int("traits", 5), Bool("degraded", false), Error(errors.New("boom")))

			Convey("Then a structured record is written", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "assessment stored")
				So(rec["logger"], ShouldEqual, "service")
				So(rec["id"], ShouldEqual, "a-1")
				So(rec["degraded"], ShouldEqual, false)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When initialized with text output", func() {
			So(Init(WithWriter(&buf)), ShouldBeNil)
			Get().Warn(context.Background(), "queue full")
			So(buf.String(), ShouldContainSubstring, "queue full")
			So(buf.String(), ShouldContainSubstring, "level=WARN")
		})

		Convey("When the format is unknown", func() {
			So(Init(WithFormat("xml")), ShouldNotBeNil)
		})

		Convey("When the level is raised", func() {
			So(Init(WithWriter(&buf)), ShouldBeNil)
			So(SetLevelString("error"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Info(context.Background(), "hidden")
			So(buf.Len(), ShouldEqual, 0)
			So(SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("When a span is active", func() {
			So(Init(WithFormat("json"), WithWriter(&buf)), ShouldBeNil)
			tp := sdktrace.NewTracerProvider()
			ctx, span := tp.Tracer("test").Start(context.Background(), "op")
			Get().Info(ctx, "traced")
			span.End()

			Convey("Then trace ids are attached", func() {
				So(strings.Contains(buf.String(), span.SpanContext().TraceID().String()), ShouldBeTrue)
			})
		})
	})
}
