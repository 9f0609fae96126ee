package ui

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waterdash/internal"
	"waterdash/internal/observability"
	"waterdash/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	server    *http.Server
	templates *template.Template
	validate  *validator.Validate
	store     *session.Store
	metrics   *observability.Metrics
	logger    *internal.Logger
	dataFile  string
}

// Config holds UI application configuration
type Config struct {
	Port     string
	DataFile string
}

// NewApp creates the dashboard application
func NewApp(store *session.Store, metrics *observability.Metrics, logger *internal.Logger, config Config) (*App, error) {
	funcMap := template.FuncMap{
		"contains": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
		"fmt2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		validate:  validator.New(),
		store:     store,
		metrics:   metrics,
		logger:    logger,
		dataFile:  config.DataFile,
	}

	app.setupMiddleware()
	app.setupRoutes()

	app.server = &http.Server{
		Addr:              ":" + config.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files from the embedded filesystem
	a.router.Handle("/static/*", http.FileServer(http.FS(embeddedFiles)))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Views
	a.router.Get("/", a.handleDashboard)
	a.router.Get("/overview", a.handleOverview)
	a.router.Get("/comparison", a.handleComparison)

	// Operational endpoints
	a.router.Get("/healthz", a.handleHealthz)
	a.router.Handle("/metrics", promhttp.Handler())
}

// Router exposes the handler tree, primarily for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	a.logger.Info("[App] dashboard listening on %s", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
