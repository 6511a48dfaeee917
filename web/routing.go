package web

import (
	"strconv"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/cozy/exavatar/pkg/metrics"
	avatarweb "github.com/cozy/exavatar/web/avatar"
	"github.com/cozy/exavatar/web/errors"
	"github.com/cozy/exavatar/web/middlewares"
	"github.com/cozy/exavatar/web/status"
	"github.com/cozy/exavatar/web/version"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// SetupRoutes sets the routing for the public HTTP endpoints
func SetupRoutes(router *echo.Echo, svc *avatar.Service) error {
	router.Use(middlewares.RequestID())
	router.Use(middlewares.LogRequests())
	router.Use(timersMiddleware)
	setupRecover(router)

	cache := middlewares.AvatarCache(config.GetConfig().IsProduction())
	avatarweb.NewHTTPHandler(svc).Register(router.Group("/api"), cache)

	// other routes, for monitoring
	{
		status.NewHTTPHandler(svc.Cache(), svc.Store()).Register(router.Group("/status"))
		version.Routes(router.Group("/version"))
	}

	router.HTTPErrorHandler = errors.ErrorHandler
	return nil
}

// SetupAdminRoutes sets the routing for the administration HTTP endpoints
func SetupAdminRoutes(router *echo.Echo) error {
	router.Use(middlewares.RequestID())
	setupRecover(router)

	version.Routes(router.Group("/version"))
	metrics.Routes(router.Group("/metrics"))

	router.HTTPErrorHandler = errors.ErrorHandler
	return nil
}

func timersMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			status := strconv.Itoa(c.Response().Status)
			metrics.HTTPTotalDurations.
				WithLabelValues(c.Request().Method, c.Path(), status).
				Observe(v)
		}))
		defer timer.ObserveDuration()
		return next(c)
	}
}

// setupRecover sets a recovering strategy of panics happening in handlers
func setupRecover(router *echo.Echo) {
	recoverMiddleware := middlewares.RecoverWithConfig(middlewares.RecoverConfig{
		StackSize: 10 << 10, // 10KB
	})
	router.Use(recoverMiddleware)
}
