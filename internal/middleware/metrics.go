package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/saniya-gs/health-recommendation-system/internal/metrics"
)

// Metrics records request count and latency per route template.  Errors
// are rendered first so the recorded status is the one sent, then passed
// on unchanged for the request logger.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err) // commit the status before reading it
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
            metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
            // The response is committed, so outer handlers only log err.
            return err
        }
    }
}
