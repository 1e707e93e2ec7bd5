package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	"github.com/kailas-cloud/moviesearch/internal/domain/search/result"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	viewIndex  = "index.html"
	viewSearch = "search.html"
	viewError  = "error.html"
)

type homeData struct {
	Modes       []mode.Mode
	DefaultMode mode.Mode
}

type searchData struct {
	Query      string
	IndexType  string
	Results    []result.Result
	SearchTime float64
}

type errorData struct {
	Query     string
	IndexType string
	Error     string
}

var funcs = template.FuncMap{
	"score": func(f float64) string { return strconv.FormatFloat(f, 'g', 4, 64) },
	"seconds": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 3, 64)
	},
}

// Views holds the parsed page templates. Each page is parsed with the shared layout.
type Views struct {
	pages map[string]*template.Template
}

// LoadViews parses the embedded templates.
func LoadViews() (*Views, error) {
	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{viewIndex, viewSearch, viewError} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Views{pages: pages}, nil
}

// MustLoadViews parses the embedded templates or panics.
func MustLoadViews() *Views {
	v, err := LoadViews()
	if err != nil {
		panic(err)
	}
	return v
}

// Render executes the page into a buffer first so a failure never leaves a partial page.
func (v *Views) Render(w http.ResponseWriter, name string, data any) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err //nolint:wrapcheck // client write
}
