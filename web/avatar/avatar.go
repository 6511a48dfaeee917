// Package avatar is the HTTP endpoint serving the avatars.
package avatar

import (
	"net/http"
	"strconv"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/web/middlewares"
	"github.com/labstack/echo/v4"
)

// HTTPHandler serves the avatars resolved by an avatar.Service.
type HTTPHandler struct {
	svc *avatar.Service
}

// NewHTTPHandler instantiates a new [HTTPHandler].
func NewHTTPHandler(svc *avatar.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Avatar responds with the image described by the query parameters.
func (h *HTTPHandler) Avatar(c echo.Context) error {
	raw := avatar.RawFromValues(c.QueryParams())
	res, err := h.svc.Resolve(c.Request().Context(), raw)
	if err != nil {
		return err
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentLength, strconv.Itoa(len(res.Data)))
	if res.Cached {
		header.Set("X-Cache", "HIT")
	} else {
		header.Set("X-Cache", "MISS")
	}
	return c.Blob(http.StatusOK, res.ContentType, res.Data)
}

// MethodNotAllowed is used for the other methods than GET.
func MethodNotAllowed(c echo.Context) error {
	return echo.ErrMethodNotAllowed
}

var otherMethods = []string{
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Register sets the routing for the avatars.
func (h *HTTPHandler) Register(router *echo.Group, cache middlewares.CacheOptions) {
	router.GET("/avatar", h.Avatar, middlewares.CacheControl(cache))
	router.Match(otherMethods, "/avatar", MethodNotAllowed)
}
