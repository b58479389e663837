package server

import (
	"net/http"

	"github.com/cloo-solutions/suggestscore/internal/api"
	"github.com/cloo-solutions/suggestscore/internal/api/handlers"
	"github.com/cloo-solutions/suggestscore/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Logger          zerolog.Logger
	EstimateHandler *handlers.EstimateHandler

	// MetricsHandler is mounted at /metrics when set
	MetricsHandler http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Get("/estimate", cfg.EstimateHandler.Estimate)

	return r
}
