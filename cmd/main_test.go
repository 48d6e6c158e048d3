package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/okian/careerlens/internal/adapters/http/api"
	"github.com/okian/careerlens/internal/adapters/http/swagger"
	app "github.com/okian/careerlens/internal/app"
	"github.com/okian/careerlens/internal/config"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel/trace/noop"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.WorkerCount = 2
	cfg.QueueSize = 16
	cfg.TrainSamples = 200
	cfg.TrainTrees = 5
	cfg.TrainMaxDepth = 5
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestBuildStore(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		ctx := context.Background()
		cfg := testConfig()

		convey.Convey("When the memory backend is selected", func() {
			store, deduper, closeFn, err := buildStore(ctx, cfg)

			convey.Convey("Then the service defaults are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldBeNil)
				convey.So(deduper, convey.ShouldBeNil)
				convey.So(closeFn(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the redis backend is reachable", func() {
			mr := miniredis.RunT(t)
			cfg.StoreBackend = config.StoreRedis
			cfg.RedisAddr = mr.Addr()

			store, deduper, closeFn, err := buildStore(ctx, cfg)

			convey.Convey("Then redis-backed store and deduper are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(deduper, convey.ShouldNotBeNil)
				seen, err := deduper.SeenAndRecord(ctx, "sub-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(seen, convey.ShouldBeFalse)
				convey.So(closeFn(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the redis backend is unreachable", func() {
			cfg.StoreBackend = config.StoreRedis
			cfg.RedisAddr = "127.0.0.1:1"

			_, _, _, err := buildStore(ctx, cfg)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestWiring(t *testing.T) {
	convey.Convey("Given the service wired from config", t, func() {
		ctx := context.Background()
		cfg := testConfig()
		cfg.QuestionSeed = 7
		log := logger.Get()

		svc := app.New(serviceOptions(cfg, log, noop.NewTracerProvider(), nil, nil)...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop(ctx)

		apiServer := api.NewServer(svc)
		defer apiServer.Close()
		mux := http.NewServeMux()
		swagger.Register(mux)
		apiServer.Register(mux)
		ts := httptest.NewServer(apiServer.Handler(mux))
		defer ts.Close()

		convey.Convey("Then the model is trained and routes respond", func() {
			convey.So(svc.ModelAvailable(), convey.ShouldBeTrue)
			convey.So(svc.GetStats()["workerCount"], convey.ShouldEqual, 2)

			for _, path := range []string{"/healthz", "/stats", "/openapi.yaml", "/market/Data%20Scientist"} {
				resp, err := http.Get(ts.URL + path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				_ = resp.Body.Close()
			}
		})

		convey.Convey("And the HTTP server carries timeouts", func() {
			srv := newHTTPServer(cfg.Addr, mux)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a short-lived process context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		convey.Convey("When run returns after cancellation", func() {
			err := run(ctx, testConfig(), logger.Get())
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When tracing is misconfigured", func() {
			cfg := testConfig()
			cfg.TracingEnabled = true
			cfg.TracingExporter = "zipkin"
			convey.So(run(ctx, cfg, logger.Get()), convey.ShouldNotBeNil)
		})
	})
}
