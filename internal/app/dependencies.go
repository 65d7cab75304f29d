package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-tiket/internal/config"
	"github.com/noah-isme/backend-tiket/internal/obs"
	"github.com/noah-isme/backend-tiket/internal/pricing"
)

// Dependencies enumerates the services shared by the HTTP surface.
type Dependencies struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Catalogs    *pricing.Store
	Redis       *redis.Client
	Metrics     *obs.PricingMetrics
	HTTPMetrics *obs.HTTPMetrics
	Registry    prometheus.Gatherer
}

// Build loads the catalog and connects optional redis. The returned close
// function releases what Build opened.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg, Logger: logger}
	if cfg.Obs.Prometheus {
		deps.Metrics = obs.NewPricingMetrics(cfg.Obs.MetricsNamespace, reg)
		deps.HTTPMetrics = obs.NewHTTPMetrics(cfg.Obs.MetricsNamespace, obs.ParseBucketsCSV(cfg.Obs.MetricsBuckets), reg)
	}

	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, nil, err
	}
	store, err := pricing.NewStore(catalog)
	if err != nil {
		return nil, nil, err
	}
	deps.Catalogs = store
	logger.Info().
		Str("source", catalogSource(cfg.CatalogFile)).
		Int("rules", len(catalog.Rules)).
		Int("discounts", len(catalog.Discounts)).
		Msg("pricing catalog loaded")

	closeFn := func() {}
	if cfg.RedisURL != "" {
		client, err := NewRedis(ctx, cfg.RedisURL, cfg.Obs.Prometheus)
		if err != nil {
			return nil, nil, err
		}
		deps.Redis = client
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}
	} else {
		logger.Warn().Msg("REDIS_URL not set; idempotency and rate limiting disabled")
	}
	return deps, closeFn, nil
}

// NewRedis connects, instruments and pings a redis client.
func NewRedis(ctx context.Context, url string, metrics bool) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis tracing: %w", err)
	}
	if metrics {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("instrument redis metrics: %w", err)
		}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
