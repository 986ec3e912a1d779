// Package renderer turns reports into markdown, HTML pages and SVG charts.
package renderer

import (
	"bytes"
	"embed"

	md "github.com/nao1215/markdown"
)

//go:embed templates/*.html
var templates embed.FS

// newDoc returns an empty markdown document, read back with String.
func newDoc() *md.Markdown {
	var buf bytes.Buffer
	return md.NewMarkdown(&buf)
}
