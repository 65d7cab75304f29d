package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-tiket/internal/pricing"
)

// Deps probes the live pricing catalog and, when configured, redis.
type Deps struct {
	Catalogs *pricing.Store
	Redis    *redis.Client
}

// CatalogLoaded reports whether a validated catalog has been published.
func (d Deps) CatalogLoaded() bool {
	return d.Catalogs != nil && d.Catalogs.Loaded()
}

// PingRedis is a no-op when redis is not configured.
func (d Deps) PingRedis(ctx context.Context, timeout time.Duration) error {
	if d.Redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.Redis.Ping(ctx).Err()
}
