package server

import (
	"embed"
	"html/template"
	"net/http"
)

// Every displayed field passes through html/template, which escapes
// untrusted output on render.

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

func renderPage(rw http.ResponseWriter, name string, data interface{}, statusCode int) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(statusCode)

	if err := templates.ExecuteTemplate(rw, name, data); err != nil {
		logg.Errorf("failed to render %v: %v", name, err)
	}
}
