package testutils

import (
	"context"
	"flag"
	"net/http/httptest"
	"path"
	"testing"
	"time"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/cache"
	"github.com/cozy/exavatar/pkg/store"
	"github.com/gavv/httpexpect/v2"
	"github.com/labstack/echo/v4"
	"github.com/ncw/swift/v2"
	"github.com/ncw/swift/v2/swifttest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var useDebug bool

func init() {
	flag.BoolVar(&useDebug, "debug", false, "display the requests content")
}

// CreateTestClient setup an httpexpect.Expect client used to make http tests.
//
// This init take allow to use the `--debug` flag in your tests in order to
// print the requests/responses content.
//
// example: `go test ./web/avatar --debug`.
func CreateTestClient(t testing.TB, url string) *httpexpect.Expect {
	var printer httpexpect.Printer

	t.Helper()

	flag.Parse()

	if useDebug {
		printer = httpexpect.NewDebugPrinter(t, true)
	} else {
		printer = httpexpect.NewCompactPrinter(t)
	}

	return httpexpect.WithConfig(httpexpect.Config{
		TestName: t.Name(),
		BaseURL:  url,
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{printer},
	})
}

// FixedRand always picks the same index, modulo the length of the list. It
// makes the random defaults predictable: FixedRand(0) picks the "ant" of the
// animals collection.
type FixedRand int

// IntN implements the utils.Rand interface.
func (f FixedRand) IntN(n int) int { return int(f) % n }

// TestSetup is a helper to build an avatar service on an in-memory asset
// store, and to serve it in tests.
type TestSetup struct {
	t      testing.TB
	name   string
	fs     afero.Fs
	assets map[string][]byte
	store  store.Store
	ts     *httptest.Server
}

// NewSetup returns a new TestSetup with an empty in-memory asset store.
// name is used to prevent bug when tests are run in parallel
func NewSetup(t testing.TB, name string) *TestSetup {
	fs := afero.NewMemMapFs()
	return &TestSetup{
		t:      t,
		name:   name,
		fs:     fs,
		assets: make(map[string][]byte),
		store:  store.NewFS(fs),
	}
}

// AddAsset writes an image in the asset store, at the canonical path
// {set}/{size}/{id}.{format}.
func (c *TestSetup) AddAsset(name string, data []byte) *TestSetup {
	c.t.Helper()
	require.NoError(c.t, c.fs.MkdirAll(path.Dir(name), 0o755))
	require.NoError(c.t, afero.WriteFile(c.fs, name, data, 0o644))
	c.assets[name] = data
	return c
}

// Fs returns the filesystem of the in-memory asset store.
func (c *TestSetup) Fs() afero.Fs {
	return c.fs
}

// SetupSwiftTest can be used to start an in-memory Swift server for tests.
// The assets already added are copied into a container, and the store of
// the setup is replaced by a Swift one.
func (c *TestSetup) SetupSwiftTest() error {
	swiftSrv, err := swifttest.NewSwiftServer("localhost")
	if err != nil {
		return err
	}
	c.t.Cleanup(swiftSrv.Close)

	ctx := context.Background()
	conn := &swift.Connection{
		UserName: "swifttest",
		ApiKey:   "swifttest",
		AuthUrl:  swiftSrv.AuthURL,
	}
	if err := conn.Authenticate(ctx); err != nil {
		return err
	}
	container := "avatars-" + c.name
	if err := conn.ContainerCreate(ctx, container, nil); err != nil {
		return err
	}

	for name, data := range c.assets {
		if err := conn.ObjectPutBytes(ctx, container, name, data, ""); err != nil {
			return err
		}
	}

	st, err := store.NewSwift(ctx, container, "", store.SwiftOptions{
		AuthURL:  swiftSrv.AuthURL,
		Username: "swifttest",
		APIKey:   "swifttest",
	})
	if err != nil {
		return err
	}
	c.store = st
	return nil
}

// GetTestService returns an avatar service on the asset store of the setup,
// with an in-memory cache. The defaults are picked with FixedRand(0) when
// opts.Rand is nil.
func (c *TestSetup) GetTestService(opts avatar.Options) *avatar.Service {
	if opts.Rand == nil {
		opts.Rand = FixedRand(0)
	}
	return avatar.NewService(c.store, cache.NewInMemory(64, time.Hour), opts, time.Second)
}

// GetTestServer start a testServer with a single group on prefix
// The server will be closed on container cleanup
func (c *TestSetup) GetTestServer(prefix string, routes func(*echo.Group),
	mws ...func(*echo.Echo) *echo.Echo) *httptest.Server {
	handler := echo.New()
	routes(handler.Group(prefix))

	for _, mw := range mws {
		handler = mw(handler)
	}
	ts := httptest.NewServer(handler)
	c.t.Cleanup(ts.Close)
	c.ts = ts
	return ts
}
