package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/vanguardgg/sitecms/internal/api/apierr"
	"github.com/vanguardgg/sitecms/internal/api/handler"
	apimw "github.com/vanguardgg/sitecms/internal/api/middleware"
	"github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/services/news"
	"github.com/vanguardgg/sitecms/internal/services/players"
	"github.com/vanguardgg/sitecms/internal/services/products"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Pinger         handler.Pinger
	NewsService    *news.Service
	PlayerService  *players.Service
	ProductService *products.Service
	// Metrics is optional
	Metrics *middleware.Metrics
	// AllowedOrigins enables CORS on the public API when non-empty
	AllowedOrigins []string
	// LoginPath is where unauthenticated admin requests are redirected
	LoginPath string
}

// Register mounts the API routes under /api on r
func Register(r *mux.Router, cfg RouterConfig) {
	newsHandler := handler.NewNewsHandler(cfg.NewsService, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService, cfg.Logger)
	productHandler := handler.NewProductHandler(cfg.ProductService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.Pinger, cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(apimw.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		api.Use(cfg.Metrics.Middleware)
	}
	if len(cfg.AllowedOrigins) > 0 {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	// Public read API
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/news", newsHandler.ListPublic).Methods(http.MethodGet)
	api.HandleFunc("/news/{id}", newsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/products", productHandler.ListPublic).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.GetPublic).Methods(http.MethodGet)

	// Admin API
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(cfg.LoginPath))

	admin.HandleFunc("/news", newsHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/news", newsHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/news/{id}", newsHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/news/{id}", newsHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/news/{id}", newsHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	// Unmatched /api paths answer in JSON rather than with the 404 page
	api.NotFoundHandler = http.HandlerFunc(notFound)
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}
