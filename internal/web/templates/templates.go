// Package templates embeds the site's HTML pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page. Each page is addressed by its file name, e.g. "anime.html".
func Load() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
