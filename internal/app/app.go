package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/404Health/universal-dataCleaner/internal/config"
	"github.com/404Health/universal-dataCleaner/internal/infrastructure"
	custommiddleware "github.com/404Health/universal-dataCleaner/internal/middleware"
	"github.com/404Health/universal-dataCleaner/internal/services"
	handlers "github.com/404Health/universal-dataCleaner/internal/transport/http"
)

// Version is set at build time.
var Version = "dev"

// Application is the web server container wiring config, logging,
// services, and HTTP transport together.
type Application struct {
	Config       *config.Config
	Logger       *slog.Logger
	Router       *chi.Mux
	Server       *http.Server
	CleanService *services.CleanService
}

// New creates the application with all dependencies initialized.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	app := &Application{
		Config:       cfg,
		Logger:       logger,
		CleanService: services.NewCleanService(cfg.Cleaning, logger),
	}
	app.Router = app.buildRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.RequestLogger(a.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.RateLimit(a.Config.Server.RateLimit))

	health := handlers.NewHealthHandler(Version)
	r.Get("/api/healthz", health.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	cleanHandler := handlers.NewCleanHandler(a.CleanService, a.Logger)
	r.Mount("/api/data", cleanHandler.Routes())

	return r
}

// Run starts the HTTP server and blocks until shutdown completes.
// SIGINT and SIGTERM trigger a graceful shutdown bounded by the
// configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("Shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.Logger.Info("Server stopped")
	return nil
}
