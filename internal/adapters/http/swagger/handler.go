// Package swagger serves the API's OpenAPI document and a docs viewer.
package swagger

import (
	"net/http"
)

// Register attaches the docs routes to mux:
//
//	GET /api-docs            -> viewer HTML
//	GET /api-docs/{asset}    -> embedded viewer scripts
//	GET /openapi.yaml        -> embedded OpenAPI spec
func Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})
	mux.Handle("GET /api-docs/", http.StripPrefix("/api-docs/", http.FileServerFS(Assets)))
	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

// The page only loads embedded assets so the docs work offline.
const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>CareerLens API Docs</title>
    <style>body{margin:0;padding:1em 2em;font-family:sans-serif}pre{background:#f6f8fa;padding:1em;overflow:auto}</style>
  </head>
  <body>
    <h1>CareerLens API</h1>
    <div id="docs" data-spec-url="/openapi.yaml"></div>
    <script src="/api-docs/viewer.js"></script>
  </body>
</html>`
