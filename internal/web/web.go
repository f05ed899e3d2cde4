// Package web serves the embedded dashboard page. The page is plain
// HTML/JS against the JSON API, so any richer frontend can replace it
// by pointing at the same endpoints.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the dashboard at / and its assets.
func Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// embed guarantees the directory exists at build time
		panic(err)
	}

	return http.FileServer(http.FS(static))
}
