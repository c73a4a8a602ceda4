package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"salonbook/pkg/config"
	"salonbook/pkg/contracts"
	"salonbook/pkg/metrics"
	"salonbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// ShutdownFunc releases one dependency during graceful shutdown.
type ShutdownFunc func(ctx context.Context) error

type shutdownHook struct {
	name string
	fn   ShutdownFunc
}

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.PhoneRateLimiter
	healthHandler    http.Handler
	appHttpHandler   http.Handler
	staticHandler    http.Handler
	hooks            []shutdownHook
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp wires the HTTP surface. A nil idempotency store falls back to the
// in-memory one.
func (a *Application) SetApp(appHandler, healthHandler contracts.Handler, idempotencyStore middleware.IdempotencyStore) {
	metrics.Register()
	if idempotencyStore == nil {
		idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	}
	a.idempotencyStore = idempotencyStore

	a.setHealthHandler(healthHandler)
	a.setAppHandler(appHandler)
	a.setStaticHandler()
	a.setAppServer()
}

// OnShutdown registers fn to run after the server stops accepting requests.
// Hooks run in registration order.
func (a *Application) OnShutdown(name string, fn ShutdownFunc) {
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

func (a *Application) setHealthHandler(healthHandler contracts.Handler) {
	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandler contracts.Handler) {
	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	a.rateLimiter = middleware.NewPhoneRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.BodyPhoneExtractor,
		a.cfg.Log,
	)

	var h http.Handler = appRouter
	h = middleware.Idempotency(a.idempotencyStore, middleware.DefaultIdempotencyHeader, a.cfg.Log)(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.PhoneRateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.appHttpHandler = h
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setStaticHandler() {
	var h http.Handler = newStaticHandler(a.cfg.StaticDir, a.cfg.Log)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.staticHandler = h
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", a.appHttpHandler)
	mux.Handle("/", a.staticHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.DefaultIdempotencyHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	var root http.Handler = mux
	root = corsHandler.Handler(root)
	root = middleware.RequestMetrics()(root)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      root,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port, "static_dir", a.cfg.StaticDir)
}

// Handler exposes the fully wrapped HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.runHooks()
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.runHooks()
	a.cfg.Log.Info("Server stopped gracefully")
}

func (a *Application) runHooks() {
	a.cfg.Log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	for _, hook := range a.hooks {
		if err := hook.fn(ctx); err != nil {
			a.cfg.Log.Error("Shutdown step failed", "step", hook.name, "error", err)
			continue
		}
		a.cfg.Log.Info("Shutdown step completed", "step", hook.name)
	}
}
