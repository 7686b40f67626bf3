// Package web holds the HTML templates and static files compiled into the binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the static asset tree rooted at its top directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FormatDate renders timestamps in UTC, the zone they are stored in.
func FormatDate(t time.Time) string {
	return t.UTC().Format("01/02/2006 - 15:04")
}

// Templates parses every page template with the shared layout.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date": FormatDate,
	}).ParseFS(templateFS, "templates/*.html")
}
