package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/vanguardgg/sitecms/internal/api"
	"github.com/vanguardgg/sitecms/internal/config"
	"github.com/vanguardgg/sitecms/internal/factory"
	"github.com/vanguardgg/sitecms/internal/logging"
)

// serverOptions holds the flags shared by serve and seed
type serverOptions struct {
	configFile string
	envFile    string
}

// register adds the config flags. Flags named after config keys are bound
// to them, so they override the environment and config file.
func (o *serverOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configFile, "config", "c", "", "Config file (yaml, toml or json)")
	fs.StringVar(&o.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")

	fs.Int("server.port", 0, "Listen port (env: PORT)")
	fs.String("storage.type", "", "Content store: mongo or memory")
	fs.String("session.store", "", "Session store: mongo, redis or memory")
	fs.String("mongo.uri", "", "MongoDB connection URI (env: MONGODB_URI)")
	fs.String("log.level", "", "Log level: debug, info, warn, error")
	fs.String("log.format", "", "Log format: json or text")
}

// options builds config.Options from the flags that were actually set, so
// unset flags do not mask lower-precedence sources
func (o *serverOptions) options(cmd *cobra.Command) config.Options {
	changed := pflag.NewFlagSet("changed", pflag.ContinueOnError)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name != "config" && f.Name != "env-file" {
			changed.AddFlag(f)
		}
	})

	opts := config.Options{
		ConfigFile: o.configFile,
		Flags:      changed,
	}
	if o.envFile != "" {
		opts.EnvFiles = []string{o.envFile}
	} else {
		opts.EnvFiles = []string{}
	}
	return opts
}

func newServeCmd() *cobra.Command {
	var flags serverOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags.options(cmd))
		},
	}
	flags.register(cmd.Flags())

	return cmd
}

// startApp loads configuration, builds the logger and wires the application
func startApp(ctx context.Context, opts config.Options) (*factory.App, io.Closer, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := logging.NewDefault(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, nil, err
	}

	app, err := factory.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		_ = logCloser.Close()
		return nil, nil, err
	}
	return app, logCloser, nil
}

func runServe(ctx context.Context, opts config.Options) error {
	app, logCloser, err := startApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	logger := app.Logger

	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// An unreachable database must not stop the site from serving static pages
	if err := app.Bootstrap(ctx); err != nil {
		logger.Error("bootstrap failed; continuing without it", slog.String("error", err.Error()))
	}

	server := api.NewServer(app.Handler(), api.ServerConfig{
		Host:            app.Config.Server.Host,
		Port:            app.Config.Server.Port,
		ReadTimeout:     app.Config.Server.ReadTimeout,
		WriteTimeout:    app.Config.Server.WriteTimeout,
		ShutdownTimeout: app.Config.Server.ShutdownTimeout,
	}, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(logger, "http server", server.Start))
	g.Go(guard(logger, "shutdown watcher", func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		}
		return server.Shutdown(context.Background())
	}))

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("env", app.Config.Env),
	)

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// guard turns a panic in fn into an error so the errgroup shuts the rest down
func guard(logger *slog.Logger, name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("goroutine panicked",
					slog.String("goroutine", name),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("%s panicked: %v", name, rec)
			}
		}()
		return fn()
	}
}

