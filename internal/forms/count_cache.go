package forms

import (
	"context"
	"strconv"
	"time"

	"dotaznik/internal/platform/redis"
)

// CountCache caches the unviewed-form count so the dashboard badge
// poll does not hit the store every time.
type CountCache interface {
	Get(ctx context.Context) (int, bool)
	Set(ctx context.Context, count int)
	Invalidate(ctx context.Context)
}

const countCacheKey = "dotaznik:forms:newCount"

// RedisCountCache stores the count under a short TTL. Cache failures
// degrade to a store read, they are never surfaced.
type RedisCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCountCache(client *redis.Client, ttl time.Duration) *RedisCountCache {
	return &RedisCountCache{client: client, ttl: ttl}
}

func (c *RedisCountCache) Get(ctx context.Context) (int, bool) {
	raw, err := c.client.Get(ctx, countCacheKey).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *RedisCountCache) Set(ctx context.Context, count int) {
	_ = c.client.Set(ctx, countCacheKey, strconv.Itoa(count), c.ttl).Err()
}

func (c *RedisCountCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, countCacheKey).Err()
}
