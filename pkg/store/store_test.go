package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ncw/swift/v2"
	"github.com/ncw/swift/v2/swifttest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catWebp = []byte("RIFF\x1a\x00\x00\x00WEBPVP8 cat")

func TestFS(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "animals/256/cat.webp", catWebp, 0o644))
	s := NewFS(fs)

	t.Run("Found", func(t *testing.T) {
		data, err := s.Fetch(ctx, "animals/256/cat.webp")
		require.NoError(t, err)
		assert.Equal(t, catWebp, data)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Fetch(ctx, "animals/256/dog.webp")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := s.Fetch(ctx, "animals/256")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InvalidPath", func(t *testing.T) {
		_, err := s.Fetch(ctx, "../etc/passwd")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Fetch(canceled, "animals/256/cat.webp")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CheckStatus", func(t *testing.T) {
		_, err := s.CheckStatus(ctx)
		assert.NoError(t, err)
	})
}

func TestHTTP(t *testing.T) {
	ctx := context.Background()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/avatars/animals/256/cat.webp":
			w.Header().Set("Content-Type", "image/webp")
			_, _ = w.Write(catWebp)
		case "/avatars/boom.webp":
			w.WriteHeader(http.StatusBadGateway)
		case "/avatars/":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	base, err := url.Parse(ts.URL + "/avatars")
	require.NoError(t, err)
	s := NewHTTPWithClient(base, ts.Client())

	data, err := s.Fetch(ctx, "animals/256/cat.webp")
	require.NoError(t, err)
	assert.Equal(t, catWebp, data)

	_, err = s.Fetch(ctx, "animals/256/dog.webp")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Fetch(ctx, "boom.webp")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = s.CheckStatus(ctx)
	assert.NoError(t, err)
}

func TestSwift(t *testing.T) {
	if testing.Short() {
		t.Skip("a swift server is started for this test: skipped due to the use of --short flag")
	}
	ctx := context.Background()
	srv, err := swifttest.NewSwiftServer("localhost")
	require.NoError(t, err)
	defer srv.Close()

	conn := &swift.Connection{
		UserName: "swifttest",
		ApiKey:   "swifttest",
		AuthUrl:  srv.AuthURL,
	}
	require.NoError(t, conn.Authenticate(ctx))
	require.NoError(t, conn.ContainerCreate(ctx, "assets", nil))
	require.NoError(t, conn.ObjectPutBytes(ctx, "assets", "v1/animals/256/cat.webp", catWebp, "image/webp"))

	s, err := NewSwift(ctx, "assets", "v1", SwiftOptions{
		AuthURL:  srv.AuthURL,
		Username: "swifttest",
		APIKey:   "swifttest",
	})
	require.NoError(t, err)

	data, err := s.Fetch(ctx, "animals/256/cat.webp")
	require.NoError(t, err)
	assert.Equal(t, catWebp, data)

	_, err = s.Fetch(ctx, "animals/256/dog.webp")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CheckStatus(ctx)
	assert.NoError(t, err)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	u, _ := url.Parse("mem://")
	s, err := New(ctx, Options{URL: u})
	require.NoError(t, err)
	assert.Equal(t, "fs", s.Kind())

	u, _ = url.Parse("https://raw.example.org/avatars/")
	s, err = New(ctx, Options{URL: u})
	require.NoError(t, err)
	assert.Equal(t, "http", s.Kind())

	u, _ = url.Parse("s3://bucket/prefix")
	s, err = New(ctx, Options{URL: u, S3: S3Options{Endpoint: "localhost:9000"}})
	require.NoError(t, err)
	assert.Equal(t, "s3", s.Kind())

	u, _ = url.Parse("ftp://example.org/")
	_, err = New(ctx, Options{URL: u})
	assert.Error(t, err)
}
