package server

import (
	"errors"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	appmiddleware "github.com/nfrund/profiledash/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unexpected errors with
// a stack trace before falling back to echo's default response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// Middleware such as the rate limiter reports a response it already wrote.
		if err == nil || c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			appmiddleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else if he.Internal != nil {
			appmiddleware.FromContext(c.Request().Context()).Warn("request failed",
				"status", he.Code,
				"error", he.Internal,
				"path", c.Request().URL.Path,
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
