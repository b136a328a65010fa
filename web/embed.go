// Package web holds the embedded gallery frontend and legal documents.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static legal
var content embed.FS

func Templates() fs.FS {
	sub, _ := fs.Sub(content, "templates")
	return sub
}

func Static() fs.FS {
	sub, _ := fs.Sub(content, "static")
	return sub
}

func Legal() fs.FS {
	sub, _ := fs.Sub(content, "legal")
	return sub
}
