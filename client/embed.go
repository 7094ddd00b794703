// Package client embeds the browser script of the calculator page and
// serves it under the live asset prefix.
package client

import (
	"embed"
	"io/fs"
	"net/http"
)

// Script is the file name of the live client.
const Script = "roicalc.js"

//go:embed src/*.js
var assets embed.FS

// Assets returns the embedded scripts rooted at src/.
func Assets() fs.FS {
	fsys, err := fs.Sub(assets, "src")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Handler serves the embedded scripts. Mount it behind http.StripPrefix.
func Handler() http.Handler {
	return http.FileServer(http.FS(Assets()))
}
