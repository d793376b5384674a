// Package web is the HTML view layer of the page flow: embedded templates,
// a Gin HTML renderer over them and the view models handlers fill in.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

// Page template names accepted by Renderer.
const (
	PageTimeline = "timeline"
	PageLogin    = "login"
	PageRegister = "register"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements gin's render.HTMLRender. Each page is parsed together
// with the shared layout so every page can define its own "body".
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses all embedded pages.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageTimeline, PageLogin, PageRegister} {
		t, err := template.New("layout").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustRenderer is NewRenderer that panics on a template error.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Instance returns the render for page name executed through the layout.
// Unknown names panic; they are programming errors.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic("web: unknown page " + name)
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
