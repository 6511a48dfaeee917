package status

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cozy/exavatar/pkg/cache"
	"github.com/cozy/exavatar/pkg/store"
	"github.com/cozy/exavatar/tests/testutils"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
)

type brokenStore struct{}

func (brokenStore) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("unreachable")
}

func (brokenStore) CheckStatus(context.Context) (time.Duration, error) {
	return 0, errors.New("dial tcp: connection refused")
}

func (brokenStore) Kind() string { return "broken" }

func newClient(t *testing.T, st store.Store) string {
	handler := echo.New()
	NewHTTPHandler(cache.NewInMemory(8, time.Minute), st).Register(handler.Group("/status"))
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestStatus(t *testing.T) {
	url := newClient(t, store.NewFS(afero.NewMemMapFs()))
	e := testutils.CreateTestClient(t, url)

	obj := e.GET("/status").
		Expect().Status(200).
		JSON().Object()
	obj.Value("cache").String().IsEqual("healthy")
	obj.Value("store").String().IsEqual("healthy")
	obj.Value("store_kind").String().IsEqual("fs")
	obj.Value("cache_kind").String().IsEqual("memory")
	obj.Value("status").String().IsEqual("OK")
	obj.Value("message").String().IsEqual("OK")
	obj.Value("latency").Object().ContainsKey("store")

	e.HEAD("/status/").Expect().Status(200)
}

func TestStatusKO(t *testing.T) {
	url := newClient(t, brokenStore{})
	e := testutils.CreateTestClient(t, url)

	obj := e.GET("/status").
		Expect().Status(502).
		JSON().Object()
	obj.Value("cache").String().IsEqual("healthy")
	obj.Value("store").String().IsEqual("dial tcp: connection refused")
	obj.Value("status").String().IsEqual("KO")
}
