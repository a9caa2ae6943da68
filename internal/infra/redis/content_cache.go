package redis

import (
	"context"
	"time"
)

// ContentCache stores provider responses as JSON strings keyed by endpoint
// and verse key. A cache miss is indistinguishable from a redis error to the
// caller; both just mean "fetch upstream".
type ContentCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewContentCache(client RedisClient, ttl time.Duration) *ContentCache {
	return &ContentCache{client: client, ttl: ttl}
}

func (c *ContentCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, "content:"+key)
}

func (c *ContentCache) Set(ctx context.Context, key string, value string) error {
	return c.client.Set(ctx, "content:"+key, value, c.ttl)
}
