package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stocktree-app/stocktree/internal/auth"
	"github.com/stocktree-app/stocktree/internal/category"
	"github.com/stocktree-app/stocktree/internal/dashboard"
	"github.com/stocktree-app/stocktree/internal/observability"
	"github.com/stocktree-app/stocktree/internal/part"
	"github.com/stocktree-app/stocktree/internal/shared"
	"github.com/stocktree-app/stocktree/internal/stock"
	"github.com/stocktree-app/stocktree/internal/view"
	"github.com/stocktree-app/stocktree/jobs"
	"github.com/stocktree-app/stocktree/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Templates        *view.Engine
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	PartHandler      *part.Handler
	CategoryHandler  *category.Handler
	StockHandler     *stock.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with StockTree defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.DashboardHandler.MountRoutes(r)

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/part", func(r chi.Router) {
		// The static "category" segment takes precedence over "{id}" in chi,
		// so the nested mount does not shadow part routes.
		r.Route("/category", params.CategoryHandler.MountRoutes)
		params.PartHandler.MountRoutes(r)
	})
	r.Route("/stock", params.StockHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
