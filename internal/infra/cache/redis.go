package cache

import (
	"context"
	"log/slog"
	"time"

	"facility-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache caches serialized analytics summaries. A nil receiver is a
// valid no-op cache, so callers never branch on whether redis is configured.
type SnapshotCache struct {
	client *redis.Client
}

// NewSnapshotCache returns nil when no redis address is configured. Cache
// misses and redis failures both degrade to recomputation.
func NewSnapshotCache(cfg config.RedisConfig) *SnapshotCache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &SnapshotCache{client: client}
}

func (c *SnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "failed to read analytics snapshot cache", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (c *SnapshotCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "failed to write analytics snapshot cache", "key", key, "error", err)
	}
}

func (c *SnapshotCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
