package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/card-market/internal/metrics"
)

// Metrics returns Echo middleware that records request duration and status
// by route. /metrics scrapes are not recorded; /healthz only updates the
// up gauge.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := routeOf(c)

			switch path {
			case "/metrics":
				return next(c)
			case "/healthz":
				err := next(c)
				if status := c.Response().Status; status >= http.StatusOK && status < http.StatusMultipleChoices {
					metrics.HealthzUp.Set(1)
				} else {
					metrics.HealthzUp.Set(0)
				}
				return err
			}

			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// routeOf returns the matched route pattern, or the raw URL path for requests
// no route matched.
func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}
