package middlewares

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// CacheMode is an enum to define a cache-control mode
type CacheMode int

const (
	// NoCache is for the no-cache control mode
	NoCache CacheMode = iota + 1
	// NoStore is for the no-store control mode
	NoStore
)

// CacheOptions contains different options for the CacheControl middleware.
type CacheOptions struct {
	MaxAge         time.Duration
	Public         bool
	Private        bool
	MustRevalidate bool
	Mode           CacheMode
}

// AvatarCache returns the caching options of the avatars: clients keep them
// for a day in production, and revalidate them on each request else.
func AvatarCache(production bool) CacheOptions {
	if production {
		return CacheOptions{Public: true, MaxAge: 24 * time.Hour}
	}
	return CacheOptions{Mode: NoCache}
}

// CacheControl returns a middleware to handle HTTP caching options. The
// header is removed when the handler fails.
func CacheControl(opts CacheOptions) echo.MiddlewareFunc {
	cache := opts.String()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cache == "" {
				return next(c)
			}
			header := c.Response().Header()
			header.Set(echo.HeaderCacheControl, cache)
			err := next(c)
			if err != nil && !c.Response().Committed {
				header.Del(echo.HeaderCacheControl)
			}
			return err
		}
	}
}

// String returns the value of the Cache-Control header.
func (opts CacheOptions) String() string {
	cache := ""
	if opts.Public {
		cache = "public"
	} else if opts.Private {
		cache = "private"
	}
	switch opts.Mode {
	case NoCache:
		cache = appendHeader(cache, "no-cache")
	case NoStore:
		cache = appendHeader(cache, "no-store")
	}
	if opts.MustRevalidate {
		cache = appendHeader(cache, "must-revalidate")
	}
	if maxAge := opts.MaxAge; maxAge > 0 {
		cache = appendHeader(cache, fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
	}
	return cache
}

func appendHeader(h, val string) string {
	if h == "" {
		return val
	}
	return h + ", " + val
}
