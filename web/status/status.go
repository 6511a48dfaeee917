// Package status is here just to say that the API is up and that it can
// access the cache and the asset store, for debugging and monitoring
// purposes.
package status

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cozy/exavatar/pkg/cache"
	"github.com/cozy/exavatar/pkg/store"
	"github.com/labstack/echo/v4"
)

const checkTimeout = 5 * time.Second

// HTTPHandler checks the dependencies of the service.
type HTTPHandler struct {
	cache cache.Cache
	store store.Store
}

// NewHTTPHandler instantiates a new [HTTPHandler].
func NewHTTPHandler(c cache.Cache, st store.Store) *HTTPHandler {
	return &HTTPHandler{cache: c, store: st}
}

// Status responds with the status of the service
func (h *HTTPHandler) Status(c echo.Context) error {
	cacheStatus := "healthy"
	storeStatus := "healthy"
	latencies := map[string]string{}
	var mu sync.Mutex

	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		latency, err := h.cache.CheckStatus(ctx)
		if err != nil {
			cacheStatus = err.Error()
			return
		}
		mu.Lock()
		latencies["cache"] = latency.String()
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		latency, err := h.store.CheckStatus(ctx)
		if err != nil {
			storeStatus = err.Error()
			return
		}
		mu.Lock()
		latencies["store"] = latency.String()
		mu.Unlock()
	}()

	wg.Wait()
	code := http.StatusOK
	status := "OK"
	if cacheStatus != "healthy" || storeStatus != "healthy" {
		code = http.StatusBadGateway
		status = "KO"
	}

	return c.JSON(code, echo.Map{
		"cache":      cacheStatus,
		"cache_kind": h.cache.Kind(),
		"store":      storeStatus,
		"store_kind": h.store.Kind(),
		"latency":    latencies,
		"status":     status,
		"message":    status, // Legacy, kept for compatibility
	})
}

// Register sets the routing for the status service
func (h *HTTPHandler) Register(router *echo.Group) {
	router.GET("", h.Status)
	router.HEAD("", h.Status)
	router.GET("/", h.Status)
	router.HEAD("/", h.Status)
}
