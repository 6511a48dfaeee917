package avatar

import (
	"context"
	"errors"
	"time"

	"github.com/cozy/exavatar/pkg/cache"
	"github.com/cozy/exavatar/pkg/filetype"
	"github.com/cozy/exavatar/pkg/logger"
	"github.com/cozy/exavatar/pkg/metrics"
	"github.com/cozy/exavatar/pkg/store"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultFetchTimeout is the maximal duration of a fetch from the store.
	DefaultFetchTimeout = 10 * time.Second

	cacheTTL = 24 * time.Hour
)

// Result is a resolved avatar, ready to be sent to the client.
type Result struct {
	Data        []byte
	ContentType string
	Config      *Config
	Cached      bool
}

// Service resolves the avatar requests: it validates the parameters, and then
// generates the SVG for a text avatar or loads the image from the store.
type Service struct {
	store   store.Store
	cache   cache.Cache
	opts    Options
	timeout time.Duration
	group   singleflight.Group
	log     *logger.Entry
}

// NewService instantiate a new [Service].
func NewService(st store.Store, c cache.Cache, opts Options, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Service{
		store:   st,
		cache:   c,
		opts:    opts,
		timeout: timeout,
		log:     logger.WithNamespace("avatar"),
	}
}

// Store returns the asset store used by the service.
func (s *Service) Store() store.Store { return s.store }

// Cache returns the cache used by the service.
func (s *Service) Cache() cache.Cache { return s.cache }

// Resolve turns the raw request parameters into an avatar. The errors are
// either a *ValidationError, ErrNotFound, a *BuildError or an *InternalError.
func (s *Service) Resolve(ctx context.Context, raw Raw) (*Result, error) {
	cfg, err := NewConfig(raw, s.opts)
	if err != nil {
		metrics.AvatarsServed.WithLabelValues("none", metrics.AvatarOutcomeInvalid).Inc()
		return nil, err
	}

	var res *Result
	if cfg.Mode() == ModeText {
		res, err = s.generate(cfg)
	} else {
		res, err = s.load(ctx, cfg)
	}

	mode := cfg.Mode().String()
	switch {
	case err == nil && res.Cached:
		metrics.AvatarsServed.WithLabelValues(mode, metrics.AvatarOutcomeCached).Inc()
	case err == nil:
		metrics.AvatarsServed.WithLabelValues(mode, metrics.AvatarOutcomeServed).Inc()
	case errors.Is(err, ErrNotFound):
		metrics.AvatarsServed.WithLabelValues(mode, metrics.AvatarOutcomeNotFound).Inc()
	default:
		metrics.AvatarsServed.WithLabelValues(mode, metrics.AvatarOutcomeErrored).Inc()
	}
	return res, err
}

func (s *Service) generate(cfg *Config) (*Result, error) {
	key := cfg.Key()
	if data, ok := s.cache.Get(key); ok {
		return &Result{Data: data, ContentType: svgContentType, Config: cfg, Cached: true}, nil
	}

	data, err := BuildSVG(cfg)
	if err != nil {
		s.log.Errorf("Cannot build the SVG for %s: %s", key, err)
		return nil, err
	}
	s.cache.Set(key, data, cacheTTL)
	return &Result{Data: data, ContentType: svgContentType, Config: cfg}, nil
}

func (s *Service) load(ctx context.Context, cfg *Config) (*Result, error) {
	key := cfg.Key()
	contentType := cfg.Format().ContentType()
	if data, ok := s.cache.Get(key); ok {
		return &Result{Data: data, ContentType: contentType, Config: cfg, Cached: true}, nil
	}

	// Concurrent requests for the same asset share a single fetch. The fetch
	// is not bound to the context of the first caller, so that it can finish
	// for the others if this client goes away.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx), cfg)
	})

	select {
	case <-ctx.Done():
		return nil, &InternalError{cause: ctx.Err()}
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return &Result{Data: r.Val.([]byte), ContentType: contentType, Config: cfg}, nil
	}
}

func (s *Service) fetch(ctx context.Context, cfg *Config) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name := cfg.Path()
	start := time.Now()
	data, err := s.store.Fetch(ctx, name)
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		metrics.AssetFetchDurations.WithLabelValues(s.store.Kind(), "found").Observe(elapsed)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidPath):
		metrics.AssetFetchDurations.WithLabelValues(s.store.Kind(), "not_found").Observe(elapsed)
		return nil, ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		metrics.AssetFetchDurations.WithLabelValues(s.store.Kind(), "timeout").Observe(elapsed)
		s.log.Warnf("Timeout while fetching %s from the %s store", name, s.store.Kind())
		return nil, ErrNotFound
	default:
		metrics.AssetFetchDurations.WithLabelValues(s.store.Kind(), "error").Observe(elapsed)
		return nil, &InternalError{cause: err}
	}

	if expected := cfg.Format().ContentType(); !filetype.Matches(data, expected) {
		s.log.WithField("path", name).
			Warnf("The asset content looks like %s, not %s", filetype.Match(data), expected)
	}
	s.cache.Set(cfg.Key(), data, cacheTTL)
	return data, nil
}
