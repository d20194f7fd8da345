// Package web provides embedded static assets and templates for the web application.
package web

import (
	"embed"
	"io/fs"
)

// TemplatesFS contains the embedded HTML templates.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the embedded static assets (CSS).
//
//go:embed all:static
var StaticFS embed.FS

// Templates returns the templates tree rooted at templates/.
func Templates() (fs.FS, error) {
	return fs.Sub(TemplatesFS, "templates")
}

// Static returns the static tree rooted at static/.
func Static() (fs.FS, error) {
	return fs.Sub(StaticFS, "static")
}
