package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cozy/httpcache"
)

const maxAssetSize = 10 << 20

// HTTP is a store that fetches the assets from a web server, like the raw
// files of a git repository.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a store for the assets under the base URL. The responses
// are kept in a small in-memory HTTP cache.
func NewHTTP(base *url.URL) *HTTP {
	client := &http.Client{
		Timeout:   20 * time.Second,
		Transport: httpcache.NewMemoryCacheTransport(32),
	}
	return NewHTTPWithClient(base, client)
}

// NewHTTPWithClient is like NewHTTP, but with a custom HTTP client.
func NewHTTPWithClient(base *url.URL, client *http.Client) *HTTP {
	u := *base
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTP{base: &u, client: client}
}

// Fetch implements the Store interface.
func (s *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base.JoinPath(name).String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode/100 != 2:
		return nil, fmt.Errorf("store: unexpected status %d for %s", res.StatusCode, name)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxAssetSize))
}

// CheckStatus implements the Store interface.
func (s *HTTP) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.base.String(), nil)
	if err != nil {
		return 0, err
	}
	res, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	res.Body.Close()
	if res.StatusCode >= 500 {
		return 0, fmt.Errorf("store: unexpected status %d", res.StatusCode)
	}
	return time.Since(before), nil
}

// Kind implements the Store interface.
func (s *HTTP) Kind() string {
	return "http"
}
