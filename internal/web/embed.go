package web

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates parses every embedded page and fragment template.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
