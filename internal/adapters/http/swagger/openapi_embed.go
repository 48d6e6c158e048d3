package swagger

import (
	"embed"
	"io/fs"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

//go:embed static
var static embed.FS

// Assets holds the viewer's scripts, served under /api-docs/.
var Assets, _ = fs.Sub(static, "static")
