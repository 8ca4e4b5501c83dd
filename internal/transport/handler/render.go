package handler

import (
	"bytes"
	"embed"
	"html/template"
	"mime"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Version is reported by the health endpoint and shown in the page footer
const Version = "v1.0.0"

//go:embed templates/*.html
var templateFS embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
	}).ParseFS(templateFS, "templates/*.html"))
}

// renderMarkdown converts model output to HTML. Raw HTML in the input is not passed through.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// writeAttachment sends body as a plain text download named filename.
// The name is used as given; FormatMediaType quotes or RFC 2231-encodes it.
func writeAttachment(w http.ResponseWriter, filename, body string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
