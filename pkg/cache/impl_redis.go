package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "exavatar:"

// Redis implementation of the cache client.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis instantiate a new Redis Cache Client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client}
}

// CheckStatus checks that the cache is ready, or returns an error.
func (c *Redis) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(before), nil
}

// Get fetch the cached asset at the given key, and returns true only if the
// asset was found.
func (c *Redis) Get(key string) ([]byte, bool) {
	cmd := c.client.Get(context.TODO(), redisPrefix+key)
	b, err := cmd.Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores an asset to the given key.
func (c *Redis) Set(key string, data []byte, expiration time.Duration) {
	c.client.Set(context.TODO(), redisPrefix+key, data, expiration)
}

// Clear removes a key from the cache
func (c *Redis) Clear(key string) {
	c.client.Del(context.TODO(), redisPrefix+key)
}

// Kind returns the name of the backend.
func (c *Redis) Kind() string {
	return "redis"
}
