// Package web embeds the page script and stylesheet served under /static.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Static returns the static assets rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// Only fails for an invalid path, which is fixed at compile time
		panic(err)
	}
	return sub
}
