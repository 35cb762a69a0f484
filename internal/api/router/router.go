package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/postclinics/clinic-dashboard/internal/http/handlers"
	httpmiddleware "github.com/postclinics/clinic-dashboard/internal/http/middleware"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SessionHandler     *handlers.SessionHandler
	ViewHandler        *handlers.ViewHandler
	FormHandler        *handlers.FormHandler
	RefreshHub         *handlers.RefreshHub
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/session", func(s chi.Router) {
		s.Post("/login", cfg.SessionHandler.Login)
		s.Post("/logout", cfg.SessionHandler.Logout)
		s.Get("/", cfg.SessionHandler.Status)
	})

	r.Route("/api/view", func(v chi.Router) {
		v.Post("/reload", cfg.ViewHandler.Reload)
		v.Get("/events", cfg.ViewHandler.Events)
		v.Get("/kpis", cfg.ViewHandler.KPIs)
		v.Get("/catalogs", cfg.ViewHandler.Catalogs)
		v.Get("/toasts", cfg.ViewHandler.Toasts)
		v.Delete("/toasts/{id}", cfg.ViewHandler.DismissToast)
	})

	r.Route("/api/form", func(f chi.Router) {
		f.Get("/", cfg.FormHandler.State)
		f.Post("/create", cfg.FormHandler.OpenCreate)
		f.Post("/select", cfg.FormHandler.Select)
		f.Post("/edit", cfg.FormHandler.OpenEdit)
		f.Post("/submit", cfg.FormHandler.Submit)
		f.Post("/close", cfg.FormHandler.Close)
		f.Delete("/details", cfg.FormHandler.CloseDetails)
	})

	r.Delete("/api/appointments/{id}", cfg.FormHandler.Delete)

	if cfg.RefreshHub != nil {
		r.Get("/ws", cfg.RefreshHub.HandleWebSocket)
	}

	return r
}
