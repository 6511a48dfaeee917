// Package store gives access to the pre-rendered avatar images. The assets
// can be on the local disk, in memory, behind a plain HTTP server (like the
// raw files of a git forge), in a S3 bucket or in a Swift container.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when no asset exists for the given path.
var ErrNotFound = errors.New("store: asset not found")

// ErrInvalidPath is returned for paths that would escape the store root.
var ErrInvalidPath = errors.New("store: invalid path")

// Store is the interface of an asset store.
type Store interface {
	// Fetch returns the content of the asset at the given path, or
	// ErrNotFound.
	Fetch(ctx context.Context, name string) ([]byte, error)
	// CheckStatus checks that the store can be reached, and returns the
	// latency.
	CheckStatus(ctx context.Context) (time.Duration, error)
	// Kind returns a short name for the backend, used in logs.
	Kind() string
}

// S3Options are the credentials for a S3 compatible store. The bucket and
// prefix come from the URL: s3://bucket/prefix
type S3Options struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// SwiftOptions are the credentials for an OpenStack Swift store. The
// container and prefix come from the URL: swift://container/prefix
type SwiftOptions struct {
	AuthURL  string `mapstructure:"auth_url"`
	Username string `mapstructure:"username"`
	APIKey   string `mapstructure:"api_key"`
	Domain   string `mapstructure:"domain"`
	Tenant   string `mapstructure:"tenant"`
	Region   string `mapstructure:"region"`
}

// Options are used to build a store with New.
type Options struct {
	URL   *url.URL
	S3    S3Options
	Swift SwiftOptions
}

// New returns the store matching the scheme of the URL:
//   - file:///path/to/avatars
//   - mem:// (empty, mostly for tests)
//   - http(s)://host/prefix/
//   - s3://bucket/prefix
//   - swift://container/prefix
func New(ctx context.Context, opts Options) (Store, error) {
	u := opts.URL
	if u == nil {
		return nil, errors.New("store: missing URL")
	}
	switch u.Scheme {
	case "file", "":
		dir := u.Path
		if u.Host != "" && u.Host != "localhost" {
			// file://./avatars is parsed with "." as host
			dir = u.Host + u.Path
		}
		return NewFS(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
	case "mem":
		return NewFS(afero.NewMemMapFs()), nil
	case "http", "https":
		return NewHTTP(u), nil
	case "s3":
		return NewS3(u.Host, prefixOf(u), opts.S3)
	case "swift":
		return NewSwift(ctx, u.Host, prefixOf(u), opts.Swift)
	default:
		return nil, fmt.Errorf("store: unknown scheme %q", u.Scheme)
	}
}

func prefixOf(u *url.URL) string {
	return strings.Trim(u.Path, "/")
}

// clean normalizes the asset path and rejects the ones with a parent
// directory reference.
func clean(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || strings.ContainsRune(name, '\\') {
		return "", ErrInvalidPath
	}
	return strings.TrimPrefix(path.Clean("/"+name), "/"), nil
}

func objectName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
