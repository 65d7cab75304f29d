package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/backend-tiket/internal/common"
	"github.com/noah-isme/backend-tiket/internal/health"
	"github.com/noah-isme/backend-tiket/internal/obs"
	"github.com/noah-isme/backend-tiket/internal/ratelimit"
	"github.com/noah-isme/backend-tiket/internal/security"
	"github.com/noah-isme/backend-tiket/internal/ticket"
)

// NewRouter assembles the HTTP surface around deps.
func NewRouter(deps *Dependencies) http.Handler {
	cfg := deps.Config
	logger := deps.Logger

	ticketSvc := &ticket.Service{Catalogs: deps.Catalogs, Metrics: deps.Metrics}
	ticketHandler := ticket.NewHandler(ticketSvc)
	healthHandler := health.Handler{Checker: health.Deps{Catalogs: deps.Catalogs, Redis: deps.Redis}}
	idem := common.Idem{R: deps.Redis, TTL: cfg.IdempotencyTTL}
	limiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: deps.Redis, Prefix: "ratelimit:"},
		Config:  ratelimit.Config{Key: ratelimit.ClientIP, Window: cfg.RateLimitWindow, Max: cfg.RateLimitMax},
		OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter unavailable") },
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(middleware.Recoverer)
	if cfg.Obs.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: deps.HTTPMetrics}.Middleware)
	r.Use(security.Headers{Enable: cfg.SecurityHeaders, EnableHSTS: cfg.AppEnv == "production"}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders: []string{"Idempotent-Replayed", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	if cfg.Obs.Prometheus {
		gatherer := deps.Registry
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1/tickets", func(t chi.Router) {
		t.Get("/prices", ticketHandler.Prices)
		t.Group(func(g chi.Router) {
			if deps.Redis != nil {
				g.Use(limiter.Middleware)
			}
			g.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
			g.Use(idem.Middleware)
			g.Post("/transactions", ticketHandler.CreateTransaction)
		})
	})

	if !cfg.Obs.Tracing {
		return r
	}
	return otelhttp.NewHandler(r, "http.server")
}
