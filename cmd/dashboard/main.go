package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/postclinics/clinic-dashboard/internal/api/router"
	"github.com/postclinics/clinic-dashboard/internal/calendar"
	appconfig "github.com/postclinics/clinic-dashboard/internal/config"
	"github.com/postclinics/clinic-dashboard/internal/form"
	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/internal/http/handlers"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/internal/store"
	"github.com/postclinics/clinic-dashboard/internal/toast"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogText)
	logger.Info("starting clinic dashboard",
		"env", cfg.Env,
		"port", cfg.Port,
		"gateway", cfg.GatewayBaseURL,
		"session_backend", cfg.SessionBackend,
	)

	tokenStore := newTokenStore(cfg)
	guard := session.NewGuard(tokenStore, nil, logger)

	gw := gateway.NewClient(cfg.GatewayBaseURL, guard, gateway.NewMetrics(prometheus.DefaultRegisterer), logger)
	st := store.New(gw, guard, logger)
	toasts := toast.NewCenter(cfg.ToastTTL)
	adapter := calendar.NewAdapter(calendar.ClinicColorPolicy)
	controller := form.NewController(gw, st, toasts, logger)

	hub := handlers.NewRefreshHub(st, logger)
	st.OnChange(hub.NotifyAppointments)
	toasts.OnChange(hub.NotifyToasts)

	r := router.New(&router.Config{
		Logger:             logger,
		SessionHandler:     handlers.NewSessionHandler(gw, guard, logger),
		ViewHandler:        handlers.NewViewHandler(st, adapter, toasts, guard, logger),
		FormHandler:        handlers.NewFormHandler(controller, guard, logger),
		RefreshHub:         hub,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newTokenStore(cfg *appconfig.Config) session.Store {
	switch cfg.SessionBackend {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		return session.NewRedisStore(redis.NewClient(opts), cfg.SessionKey)
	case "memory":
		return session.NewMemoryStore()
	default:
		path := cfg.TokenFile
		if path == "" {
			path = session.DefaultTokenPath()
		}
		return session.NewFileStore(path)
	}
}
