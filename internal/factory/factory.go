package factory

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanguardgg/sitecms/internal/api"
	"github.com/vanguardgg/sitecms/internal/config"
	"github.com/vanguardgg/sitecms/internal/dependencies/clock"
	"github.com/vanguardgg/sitecms/internal/dependencies/random"
	"github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/services/auth"
	"github.com/vanguardgg/sitecms/internal/services/media"
	"github.com/vanguardgg/sitecms/internal/services/news"
	"github.com/vanguardgg/sitecms/internal/services/players"
	"github.com/vanguardgg/sitecms/internal/services/products"
	"github.com/vanguardgg/sitecms/internal/storage"
	"github.com/vanguardgg/sitecms/internal/storage/memory"
	mongostorage "github.com/vanguardgg/sitecms/internal/storage/mongo"
	redisstorage "github.com/vanguardgg/sitecms/internal/storage/redis"
	"github.com/vanguardgg/sitecms/internal/upload"
	"github.com/vanguardgg/sitecms/internal/web"
	webhandler "github.com/vanguardgg/sitecms/internal/web/handler"
	webmw "github.com/vanguardgg/sitecms/internal/web/middleware"
)

// App contains all wired application components
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStorage
	Uploads  *upload.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	NewsService    *news.Service
	PlayerService  *players.Service
	ProductService *products.Service
	AuthService    *auth.Service

	Renderer *webhandler.Renderer
	Metrics  *middleware.Metrics
	Registry *prometheus.Registry

	// schema is set when the content store can create its own indexes
	schema  schemaEnsurer
	closers []func(context.Context) error
}

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// New creates a new application with all dependencies wired. Connections
// are established lazily: an unreachable database is logged, not fatal.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	app := &App{
		Config: cfg,
		Logger: logger,
		Clock:  clk,
		Random: rnd,
	}

	if err := app.openStorage(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	if err := app.openSessions(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	if err := app.wire(); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	return app, nil
}

func (a *App) openStorage(ctx context.Context) error {
	switch a.Config.Storage.Type {
	case config.StorageMemory:
		a.Storage = memory.New()
	case config.StorageMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = a.Config.Mongo.URI
		mongoCfg.Database = a.Config.Mongo.Database
		if a.Config.Mongo.ConnectTimeout > 0 {
			mongoCfg.ConnectTimeout = a.Config.Mongo.ConnectTimeout
		}
		store, err := mongostorage.New(mongoCfg)
		if err != nil {
			return fmt.Errorf("failed to create mongo storage: %w", err)
		}
		a.Storage = store
		a.schema = store
		a.closers = append(a.closers, store.Close)

		if err := store.Ping(ctx); err != nil {
			a.Logger.Error("database unreachable; requests will fail until it recovers",
				slog.String("database", mongoCfg.Database),
				slog.String("error", err.Error()),
			)
		} else {
			a.Logger.Info("database connected", slog.String("database", mongoCfg.Database))
		}
	default:
		return fmt.Errorf("invalid storage type %q", a.Config.Storage.Type)
	}
	return nil
}

func (a *App) openSessions(_ context.Context) error {
	switch a.Config.SessionStore() {
	case config.StorageMongo:
		sessions, ok := a.Storage.(storage.SessionStorage)
		if !ok {
			return errors.New("mongo session store requires mongo storage")
		}
		a.Sessions = sessions
	case config.StorageMemory:
		if sessions, ok := a.Storage.(*memory.Storage); ok {
			a.Sessions = sessions
		} else {
			a.Sessions = memory.New()
		}
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = a.Config.Redis.URL
		sessions, err := redisstorage.New(redisCfg, a.Clock)
		if err != nil {
			return fmt.Errorf("failed to create redis session store: %w", err)
		}
		a.Sessions = sessions
		a.closers = append(a.closers, func(context.Context) error { return sessions.Close() })
	default:
		return fmt.Errorf("invalid session store %q", a.Config.SessionStore())
	}
	return nil
}

// wire builds the services on top of the opened stores
func (a *App) wire() error {
	cfg := a.Config

	uploads, err := upload.New(cfg.Paths.UploadDir, a.Clock, a.Random, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	a.Uploads = uploads
	images := media.New(uploads, a.Logger)

	secret := cfg.Session.Secret
	if secret == "" {
		secret = rand.Text()
		a.Logger.Warn("session.secret not set; using a random secret, sessions will not survive restarts")
	}

	a.NewsService = news.New(a.Storage, images, a.Clock, news.Config{
		Organization: cfg.Site.Organization,
		PublicLimit:  cfg.News.PublicLimit,
	}, a.Logger)
	a.PlayerService = players.New(a.Storage, images, a.Clock, a.Logger)
	a.ProductService = products.New(a.Storage, images, a.Clock, a.Logger)
	a.AuthService = auth.New(a.Storage, a.Sessions, a.Clock, auth.Config{
		SessionDuration: cfg.Session.MaxAge,
		Secret:          secret,
	}, a.Logger)

	renderer, err := webhandler.NewRenderer(cfg.Paths.StaticDir, cfg.Paths.AdminDir, cfg.Site.Organization, a.Logger)
	if err != nil {
		return err
	}
	a.Renderer = renderer

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = middleware.NewMetrics(a.Registry)

	return nil
}

// Bootstrap prepares the stores for serving: indexes, validators and the
// default admin account
func (a *App) Bootstrap(ctx context.Context) error {
	if a.schema != nil {
		if err := a.schema.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	if _, err := a.SeedAdmin(ctx); err != nil {
		return err
	}
	return nil
}

// SeedAdmin creates the configured admin if no admin exists. A missing
// password is replaced by a generated one, which is logged once.
func (a *App) SeedAdmin(ctx context.Context) (bool, error) {
	password := a.Config.Admin.Password
	if password == "" {
		password = rand.Text()
	}

	created, err := a.AuthService.EnsureDefaultAdmin(ctx, a.Config.Admin.Username, password, a.Config.Admin.Role)
	if err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}
	return created, nil
}

// SessionCookie describes the admin session cookie
func (a *App) SessionCookie() middleware.SessionCookie {
	return middleware.SessionCookie{
		Name:   a.Config.Session.CookieName,
		MaxAge: a.AuthService.SessionDuration(),
		Secure: a.Config.IsProduction(),
	}
}

// Handler composes the full HTTP handler: request id, real ip, access
// log, static files, session, then the API, uploads, metrics and pages
func (a *App) Handler() http.Handler {
	cookie := a.SessionCookie()

	r := mux.NewRouter()

	api.Register(r, api.RouterConfig{
		Logger:         a.Logger,
		Pinger:         a.Storage,
		NewsService:    a.NewsService,
		PlayerService:  a.PlayerService,
		ProductService: a.ProductService,
		Metrics:        a.Metrics,
		AllowedOrigins: a.Config.CORS.AllowedOrigins,
		LoginPath:      webhandler.LoginPath,
	})

	r.PathPrefix(upload.URLPrefix).Handler(a.Uploads.Handler()).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	web.Register(r, web.RouterConfig{
		Logger:      a.Logger,
		Renderer:    a.Renderer,
		AuthService: a.AuthService,
		NewsService: a.NewsService,
		Cookie:      cookie,
		Metrics:     a.Metrics,
	})

	var h http.Handler = r
	h = middleware.Session(a.AuthService, cookie, a.Logger)(h)
	h = webmw.Static(a.Config.Paths.StaticDir)(h)
	h = middleware.Logging(a.Logger)(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	return h
}

// Close releases every connection the app opened
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
