package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dataweaver/internal/config"
	"dataweaver/internal/dataset"
	apierrors "dataweaver/internal/errors"
	"dataweaver/internal/infrastructure"
	custommw "dataweaver/internal/middleware"
	"dataweaver/internal/services"
	transporthttp "dataweaver/internal/transport/http"
	ws "dataweaver/internal/websocket"
)

// Application wires configuration, logging, metrics, the data pipeline,
// services, and the HTTP server into one runnable unit.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Router  chi.Router
	Server  *http.Server

	loader   *dataset.Loader
	store    *dataset.Store
	data     *services.DataService
	analysis *services.AnalysisService
	health   *services.HealthService
	hub      *ws.Hub
	watcher  *ws.Watcher
}

// NewApplication builds a fully wired application from configuration
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	metrics, err := infrastructure.InitializeMetrics(config.AppVersion, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	a := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	a.initializeServices()
	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) initializeServices() {
	a.loader = dataset.NewLoader(a.Config.Paths.TemperatureFile, a.Config.Paths.EggPriceFile, a.Logger)
	a.store = dataset.NewStore(a.loader, a.Config.Cache.TTL)

	a.data = services.NewDataService(a.store, a.Metrics, a.Logger)
	a.analysis = services.NewAnalysisService(a.data, a.Metrics, a.Logger)
	a.health = services.NewHealthService(config.AppVersion, a.loader, a.data, a.Logger)

	a.hub = ws.NewHub(a.Logger)
	a.watcher = ws.NewWatcher(a.hub, a.data, a.Config.Cache.WatchPeriod, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	dataHandler := transporthttp.NewDataHandler(a.data, a.Logger, errorHandler)
	analysisHandler := transporthttp.NewAnalysisHandler(a.analysis, a.Logger, errorHandler)
	exportHandler := transporthttp.NewExportHandler(a.data, a.analysis, a.Logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(a.health, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

		r.Mount("/data", dataHandler.Routes())
		r.Mount("/analysis", analysisHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
		r.Mount("/healthz", healthHandler.Routes())
	})

	r.Handle("/metrics", a.Metrics.PrometheusHTTP)
	r.Get("/ws", a.handleWebSocket)

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// handleWebSocket upgrades dashboard clients onto the refresh hub
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws.ServeWS(a.hub, w, r, a.Logger)
}

// Start runs the HTTP server, the hub, and the source watcher until the
// context is canceled, then shuts everything down within the configured
// shutdown timeout.
func (a *Application) Start(ctx context.Context) error {
	a.hub.Start()

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go a.watcher.Run(watchCtx)

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", config.AppVersion))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	return a.Stop()
}

// Stop gracefully shuts down the server and flushes metrics and logs
func (a *Application) Stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return err
	}

	a.hub.Stop()

	if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("log file close failed", slog.String("error", err.Error()))
	}

	a.Logger.Info("shutdown complete")
	return nil
}

// Hub exposes the websocket hub, mainly for tests
func (a *Application) Hub() *ws.Hub {
	return a.hub
}
