// Package assets embeds the relay's static viewer page, in the style
// of sa6mwa-centaurx's httpapi.assetsFS: a single embed.FS rooted at a
// static/ subdirectory, served at "/" (spec.md 4.3.1).
package assets

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var embedded embed.FS

// FS is rooted at the embedded static/ directory, so callers address
// files by their top-level name ("viewer.html") rather than
// "static/viewer.html".
var FS fs.FS

func init() {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		FS = embedded
		return
	}
	FS = sub
}
