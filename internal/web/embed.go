// Package web embeds the dashboard frontend served by the local HTTP server.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var assets embed.FS

// Assets returns the embedded dashboard files.
func Assets() fs.FS {
	return assets
}
