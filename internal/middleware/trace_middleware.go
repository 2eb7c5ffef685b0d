package middleware

import (
	"localGuide/business/feed"

	"github.com/labstack/echo/v4"
)

// TraceMiddleware copies the request id into the request context so
// service logs can be correlated. Must run after echo's RequestID.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(feed.ContextWithTraceID(req.Context(), id)))
			}

			return next(c)
		}
	}
}
