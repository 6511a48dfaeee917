package store

import (
	"context"
	"errors"
	"time"

	"github.com/ncw/swift/v2"
)

// Swift is a store that reads the assets from an OpenStack Swift container.
type Swift struct {
	c         *swift.Connection
	container string
	prefix    string
}

// NewSwift authenticates on the Swift server and returns a store for the
// objects of container, under prefix.
func NewSwift(ctx context.Context, container, prefix string, opts SwiftOptions) (*Swift, error) {
	if container == "" {
		return nil, errors.New("store: missing Swift container")
	}
	c := &swift.Connection{
		UserName:       opts.Username,
		ApiKey:         opts.APIKey,
		AuthUrl:        opts.AuthURL,
		Domain:         opts.Domain,
		Tenant:         opts.Tenant,
		Region:         opts.Region,
		ConnectTimeout: 10 * time.Second,
		Timeout:        60 * time.Second,
	}
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}
	return &Swift{c: c, container: container, prefix: prefix}, nil
}

// Fetch implements the Store interface.
func (s *Swift) Fetch(ctx context.Context, name string) ([]byte, error) {
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	data, err := s.c.ObjectGetBytes(ctx, s.container, objectName(s.prefix, name))
	if err != nil {
		if errors.Is(err, swift.ObjectNotFound) || errors.Is(err, swift.ContainerNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// CheckStatus implements the Store interface.
func (s *Swift) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	if _, _, err := s.c.Container(ctx, s.container); err != nil {
		return 0, err
	}
	return time.Since(before), nil
}

// Kind implements the Store interface.
func (s *Swift) Kind() string {
	return "swift"
}
