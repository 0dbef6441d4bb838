package bootstrap

import (
	"context"

	"facility-booking/internal/infra/cache"
	"facility-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewSnapshotCache,
	),
)

// NewSnapshotCache may return nil when redis is not configured; the analytics
// query layer treats a nil cache as disabled.
func NewSnapshotCache(lc fx.Lifecycle, cfg config.Config) *cache.SnapshotCache {
	c := cache.NewSnapshotCache(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})

	return c
}
