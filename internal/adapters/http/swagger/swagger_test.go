package swagger_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/careerlens/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given the docs routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(mux)

		Convey("The OpenAPI document is served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/yaml; charset=utf-8")
			for _, path := range []string{"/assessments:", "/assessments/async:", "/resume/analyze:", "/market/{career}:"} {
				So(w.Body.String(), ShouldContainSubstring, path)
			}
		})

		Convey("The viewer points at the document", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `data-spec-url="/openapi.yaml"`)
			So(w.Body.String(), ShouldContainSubstring, `<script src="/api-docs/viewer.js">`)
			So(w.Body.String(), ShouldNotContainSubstring, "https://")
		})

		Convey("The viewer script is served from the binary", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs/viewer.js", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "javascript")
			So(w.Body.String(), ShouldContainSubstring, "data-spec-url")

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs/missing.js", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A nil mux panics", func() {
			So(func() { swagger.Register(nil) }, ShouldPanic)
		})
	})
}
