package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome    = "home.html"
	pageEdit    = "edit.html"
	pageEdited  = "edited.html"
	pageShared  = "shared.html"
	pageFailure = "failure.html"
	pageMessage = "message.html"
)

// Pages is the parsed set of HTML pages. Each page is parsed together with
// the shared layout.
type Pages struct {
	pages map[string]*template.Template
}

func LoadPages() (*Pages, error) {
	p := &Pages{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pageEdit, pageEdited, pageShared, pageFailure, pageMessage} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := p.pages[name]
	if !ok {
		slogx.FromContext(r.Context()).Error("unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slogx.FromContext(r.Context()).Error("render page", "page", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type messagePage struct {
	Message string
}

// Message renders a one-line page with a Home link.
func (p *Pages) Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p.Render(w, r, status, pageMessage, messagePage{Message: msg})
}
