package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/web/middleware"
)

// Page names. Admin pages live in their own directory outside the static root
// so the static file short-circuit can never serve them ungated.
const (
	PageIndex      = "index.html"
	PageTeam       = "team.html"
	PageNews       = "news.html"
	PageNewsDetail = "news-detail.html"
	PageStore      = "store.html"
	PageLookbook   = "lookbook.html"
	PageContact    = "contact.html"
	PageNotFound   = "404.html"

	PageLogin         = "admin/login.html"
	PageDashboard     = "admin/dashboard.html"
	PageAdminNews     = "admin/news.html"
	PageAdminPlayers  = "admin/players.html"
	PageAdminProducts = "admin/products.html"
)

// PageData is passed to every page template
type PageData struct {
	Title        string
	Organization string
	// Username is set on admin pages
	Username string
	Flash    *middleware.FlashMessage
	// Article is set on the news detail page
	Article *model.NewsArticle
}

// Renderer executes the site's HTML pages. Pages are plain HTML files that
// may use html/template actions.
type Renderer struct {
	pages        map[string]*template.Template
	organization string
	logger       *slog.Logger
}

// NewRenderer parses every .html file directly under staticDir and adminDir.
// Admin pages are registered as "admin/<file>".
func NewRenderer(staticDir, adminDir, organization string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:        make(map[string]*template.Template),
		organization: organization,
		logger:       logger,
	}
	if err := r.parseDir(staticDir, ""); err != nil {
		return nil, err
	}
	if err := r.parseDir(adminDir, "admin/"); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseDir(dir, prefix string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read page directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		tmpl, err := template.ParseFiles(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", e.Name(), err)
		}
		r.pages[prefix+e.Name()] = tmpl
	}
	return nil
}

// Render writes the named page with the given status
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data PageData) {
	tmpl, ok := r.pages[name]
	if !ok {
		if name == PageNotFound {
			middleware.ErrorPage(w, http.StatusNotFound)
			return
		}
		r.logger.Error("page not loaded", slog.String("page", name))
		middleware.ErrorPage(w, http.StatusInternalServerError)
		return
	}

	if data.Organization == "" {
		data.Organization = r.organization
	}
	if data.Flash == nil {
		data.Flash = middleware.GetFlash(req.Context())
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.logger.Error("failed to render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		middleware.ErrorPage(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page
func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.Render(w, req, http.StatusNotFound, PageNotFound, PageData{Title: "Page not found"})
}
