package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// RedisRouteCache stores optimization results as JSON with a fixed TTL.
// Keys are produced by optimizer.LocationsKey.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return domain.RouteResult{}, false, errors.New("route cache: client is nil")
	}

	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RouteResult{}, false, nil
	}
	if err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var res domain.RouteResult
	if err := json.Unmarshal(b, &res); err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return res, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, result domain.RouteResult) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("put route cache key=%q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}

	return nil
}
