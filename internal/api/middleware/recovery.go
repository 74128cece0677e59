package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/card-market/internal/metrics"
)

// Recovery returns Echo middleware that turns a handler panic into a 500 with
// the API error body. Each panic is logged with its route and request id and
// counted per route. http.ErrAbortHandler is re-raised for the server, and a
// response that was already written is left as is.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				route := routeOf(c)
				method := c.Request().Method
				metrics.HTTPPanicsTotal.WithLabelValues(method, route).Inc()
				log.Error("handler panicked",
					"route", route,
					"method", method,
					"request_id", c.Get(RequestIDKey),
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]string{
					"message": "internal server error",
				})
			}()
			return next(c)
		}
	}
}
