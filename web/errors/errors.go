// Package errors turns the errors returned by the handlers into HTTP
// responses. The internal errors are logged, but their details are never
// sent to the client.
package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/web/middlewares"
	"github.com/golang/gddo/httputil"
	"github.com/labstack/echo/v4"
)

var contentTypeOffers = []string{
	echo.MIMETextPlain,
	echo.MIMEApplicationJSON,
}

const defaultContentTypeOffer = echo.MIMETextPlain

// ServerErrorTitle is the only message sent to the client for an internal
// error.
const ServerErrorTitle = "Server Error"

// NotFoundDetail is the message sent to the client when the image of an
// avatar doesn't exist.
const NotFoundDetail = "Avatar not found"

// ErrorNormalized is created by the error handler to normalize any error into
// a struct containing all the elements to create a full HTTP error response.
type ErrorNormalized struct {
	status int
	title  string
	detail string
	inner  error
}

// ErrorJSON is the body of an error response in JSON.
type ErrorJSON struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ToJSON returns the JSON body for the normalized error.
func (e *ErrorNormalized) ToJSON() *ErrorJSON {
	return &ErrorJSON{
		Status: e.Status(),
		Title:  e.Title(),
		Detail: e.Detail(),
	}
}

// Status return the HTTP status code associated with the normalized error.
func (e *ErrorNormalized) Status() int {
	return e.status
}

// Title returns the error title string value.
func (e *ErrorNormalized) Title() string {
	if e.title != "" {
		return e.title
	}
	return http.StatusText(e.status)
}

// Detail returns the error detailed string value. It is empty for the
// internal errors.
func (e *ErrorNormalized) Detail() string {
	return e.detail
}

// Inner returns the error before its normalization.
func (e *ErrorNormalized) Inner() error {
	return e.inner
}

// NormalizeError creates a normalized version of the given error that can be
// used to create an HTTP response.
func NormalizeError(err error) *ErrorNormalized {
	if err == nil {
		return nil
	}

	n := ErrorNormalized{inner: err}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		n.status = he.Code
		if he.Internal != nil {
			err = he.Internal
		} else if n.status < http.StatusInternalServerError {
			n.detail = fmt.Sprintf("%v", he.Message)
		}
	}

	var verr *avatar.ValidationError
	switch {
	case errors.As(err, &verr):
		n.status = http.StatusBadRequest
		n.detail = verr.Error()
	case errors.Is(err, avatar.ErrNotFound):
		n.status = http.StatusNotFound
		n.detail = NotFoundDetail
	case n.status == 0:
		n.status = http.StatusInternalServerError
	}

	if n.status >= http.StatusInternalServerError {
		n.title = ServerErrorTitle
		n.detail = ""
	}

	return &n
}

// ErrorHandler is the default error handler of our APIs.
func ErrorHandler(err error, c echo.Context) {
	WriteError(err, c.Response(), c)
}

// WriteError can be used to write an error response in a specific
// http.ResponseWriter different than the echo.Content response.
func WriteError(err error, res http.ResponseWriter, c echo.Context) {
	req := c.Request()
	errn := NormalizeError(err)

	log := middlewares.Logger(c)
	if errn.Status() >= http.StatusInternalServerError {
		log.Errorf("[http] %s %s: %s", req.Method, req.URL.Path, describe(err))
	} else {
		log.Debugf("[http] %s %s: %s", req.Method, req.URL.Path, err)
	}

	if c.Response().Committed {
		return
	}

	contentTypeOffer := httputil.NegotiateContentType(req, contentTypeOffers, defaultContentTypeOffer)

	b := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		b.Reset()
		bufferPool.Put(b)
	}()

	var contentType string
	switch contentTypeOffer {
	case echo.MIMEApplicationJSON:
		contentType = echo.MIMEApplicationJSON
		_ = json.NewEncoder(b).Encode(errn.ToJSON())
	default:
		contentType = echo.MIMETextPlainCharsetUTF8
		if detail := errn.Detail(); detail != "" {
			b.WriteString(detail)
		} else {
			b.WriteString(errn.Title())
		}
	}

	if errn.Status() == http.StatusMethodNotAllowed {
		res.Header().Set(echo.HeaderAllow, http.MethodGet)
	}
	res.Header().Set(echo.HeaderContentType, contentType)
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(b.Len()))
	res.WriteHeader(errn.Status())
	if req.Method == http.MethodHead {
		return
	}
	if _, errw := res.Write(b.Bytes()); errw != nil {
		log.Errorf("[http] could not write out request: %s %s: %s",
			req.Method, req.URL.Path, errw)
	}
}

// describe returns the message of the error, completed by the messages of
// the errors it wraps when they are hidden (like for avatar.InternalError).
func describe(err error) string {
	msg := err.Error()
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		if m := cause.Error(); !strings.Contains(msg, m) {
			msg += ": " + m
		}
	}
	return msg
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}
