package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	sitemw "github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/services/auth"
	"github.com/vanguardgg/sitecms/internal/services/news"
	"github.com/vanguardgg/sitecms/internal/web/handler"
	"github.com/vanguardgg/sitecms/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Renderer    *handler.Renderer
	AuthService *auth.Service
	NewsService *news.Service
	Cookie      sitemw.SessionCookie
	// Metrics is optional
	Metrics *sitemw.Metrics
}

// Register mounts the public pages, the login flow and the admin panel on r,
// and installs r's 404 and 405 pages
func Register(r *mux.Router, cfg RouterConfig) {
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	adminMiddleware := sitemw.RequireAdmin(handler.LoginPath)

	pagesHandler := handler.NewPagesHandler(cfg.Renderer, cfg.NewsService, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Cookie, cfg.Renderer, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(recoveryMiddleware)
	if cfg.Metrics != nil {
		pages.Use(cfg.Metrics.Middleware)
	}
	pages.Use(flashMiddleware)

	// Public site
	pages.HandleFunc("/", pagesHandler.Page(handler.PageIndex, "Home")).Methods(http.MethodGet)
	pages.HandleFunc("/team", pagesHandler.Page(handler.PageTeam, "Team")).Methods(http.MethodGet)
	pages.HandleFunc("/news", pagesHandler.Page(handler.PageNews, "News")).Methods(http.MethodGet)
	pages.HandleFunc("/news/{id}", pagesHandler.NewsDetail).Methods(http.MethodGet)
	pages.HandleFunc("/store", pagesHandler.Page(handler.PageStore, "Store")).Methods(http.MethodGet)
	pages.HandleFunc("/lookbook", pagesHandler.Page(handler.PageLookbook, "Lookbook")).Methods(http.MethodGet)
	pages.HandleFunc("/contact", pagesHandler.Page(handler.PageContact, "Contact")).Methods(http.MethodGet)

	// Login flow (no auth required)
	pages.HandleFunc(handler.LoginPath, authHandler.LoginPage).Methods(http.MethodGet)
	pages.HandleFunc(handler.LoginPath, authHandler.Login).Methods(http.MethodPost)
	pages.HandleFunc(handler.LogoutPath, authHandler.Logout).Methods(http.MethodGet)

	// Admin panel
	admin := pages.NewRoute().Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc(handler.DashboardPath, pagesHandler.Page(handler.PageDashboard, "Dashboard")).Methods(http.MethodGet)
	admin.HandleFunc("/admin/adminnews", pagesHandler.Page(handler.PageAdminNews, "Manage News")).Methods(http.MethodGet)
	admin.HandleFunc("/admin/adminplayers", pagesHandler.Page(handler.PageAdminPlayers, "Manage Players")).Methods(http.MethodGet)
	admin.HandleFunc("/admin/adminproducts", pagesHandler.Page(handler.PageAdminProducts, "Manage Products")).Methods(http.MethodGet)

	r.NotFoundHandler = recoveryMiddleware(flashMiddleware(http.HandlerFunc(pagesHandler.NotFound)))
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		middleware.ErrorPage(w, http.StatusMethodNotAllowed)
	})
}
