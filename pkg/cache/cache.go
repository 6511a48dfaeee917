package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a rudimentary key/value caching store for the avatar bytes. It is
// backed by redis when several instances share it, or by a bounded in-memory
// LRU else.
type Cache interface {
	CheckStatus(ctx context.Context) (time.Duration, error)
	Get(key string) ([]byte, bool)
	Set(key string, data []byte, expiration time.Duration)
	Clear(key string)
	Kind() string
}

// Options are used to configure the in-memory backend.
type Options struct {
	Size int
	TTL  time.Duration
}

const (
	// DefaultSize is the number of entries kept by the in-memory backend.
	DefaultSize = 1024
	// DefaultTTL is the expiration of the entries of the in-memory backend.
	DefaultTTL = 24 * time.Hour
)

// New instantiates a Cache.
//
// The backend selection is done based on the `client` argument. If a client is
// given, the redis backend is chosen, if nil is provided the inmemory backend would
// be chosen.
func New(client redis.UniversalClient, opts Options) Cache {
	if client == nil {
		return NewInMemory(opts.Size, opts.TTL)
	}
	return NewRedis(client)
}
