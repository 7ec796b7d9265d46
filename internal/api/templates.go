package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/neexbeast/trip-planner/internal/flash"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home", "about", "destinations", "city", "weather", "local_guide", "details", "not_found",
}

// pages holds one template set per page, each sharing the layout.
type pages struct {
	sets map[string]*template.Template
}

// page is what every template receives.
type page struct {
	Title   string
	Flashes []flash.Message
	Data    any
}

func mustParsePages() *pages {
	p := &pages{sets: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t := template.Must(template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
		p.sets[name] = t
	}
	return p
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (h *Handlers) render(w http.ResponseWriter, status int, name string, pg page) {
	t, ok := h.pages.sets[name]
	if !ok {
		h.log.Error("unknown template", "name", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pg); err != nil {
		h.log.Error("rendering template", "name", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
