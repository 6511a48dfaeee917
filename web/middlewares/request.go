package middlewares

import (
	"github.com/cozy/exavatar/pkg/logger"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestID gives an identifier to each request, in the X-Request-Id header
// of the response. An identifier sent by the client is kept.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newRequestID,
	})
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

// Logger returns a logger for the current request, with its identifier.
func Logger(c echo.Context) *logger.Entry {
	id := c.Response().Header().Get(echo.HeaderXRequestID)
	return logger.WithNamespace("http").WithRequestID(id)
}

// LogRequests writes a line of log for each request once it is served.
func LogRequests() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:       true,
		LogURI:          true,
		LogStatus:       true,
		LogLatency:      true,
		LogRequestID:    true,
		LogRemoteIP:     true,
		LogResponseSize: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithNamespace("http").
				WithRequestID(v.RequestID).
				WithFields(logger.Fields{
					"method":    v.Method,
					"uri":       v.URI,
					"status":    v.Status,
					"latency":   v.Latency.String(),
					"remote_ip": v.RemoteIP,
					"bytes_out": v.ResponseSize,
				}).
				Info("request")
			return nil
		},
	})
}
