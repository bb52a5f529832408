package render

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Names of the templates returned by Templates.
const (
	TemplatePage    = "page"
	TemplateLesson  = "lesson"
	TemplateEditor  = "editor"
	TemplateResults = "results"
)

// PageData is the data every template receives.
type PageData struct {
	Nav     template.HTML
	Lesson  *LessonView
	Editor  string
	Results template.HTML

	// Fragment is set when only a part of the page is rendered, so the
	// navigation is swapped out of band.
	Fragment bool
}

// Templates parses the page templates.
func Templates() *template.Template {
	return template.Must(template.New("sqlquest").ParseFS(templateFS, "templates/*.tmpl"))
}

// StaticFS serves the stylesheet.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}
