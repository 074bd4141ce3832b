// Package view renders the server side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Render.
const (
	PageIndex   = "index"
	PageLetter  = "letter"
	PageInfo    = "info"
	PageReviews = "reviews"
	PageError   = "error"
)

var pages = []string{PageIndex, PageLetter, PageInfo, PageReviews, PageError}

var funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
	"inc":        func(n int) int { return n + 1 },
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Every page is cloned onto the shared
// layout.
func New() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the named page into a buffer and writes it with status.
// Nothing is written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// IndexData is the landing page model.
type IndexData struct {
	Letters []string
}

// Letters returns the first-character buckets linked from the landing page.
func Letters() []string {
	out := make([]string, 0, 36)
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		out = append(out, string(c))
	}
	return out
}

// ErrorData is the error page model.
type ErrorData struct {
	Status     int
	StatusText string
	Message    string
}

// RenderError writes the error page, falling back to plain text when the
// template itself fails.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) {
	data := ErrorData{Status: status, StatusText: http.StatusText(status), Message: message}
	if err := r.Render(w, status, PageError, data); err != nil {
		http.Error(w, message, status)
	}
}
