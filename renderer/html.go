package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.ParseFS(templates, "templates/report.html"))

// HTMLReport converts markdown to HTML and wraps it in a standalone page
// followed by the charts.
func HTMLReport(title, markdown string, charts ...template.HTML) (string, error) {
	var body bytes.Buffer
	if err := gfm.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title  string
		Body   template.HTML
		Charts []template.HTML
	}{title, template.HTML(body.String()), charts})
	if err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return out.String(), nil
}
