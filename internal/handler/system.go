package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
)

// Health is a liveness endpoint for load balancers.  It returns plain "ok".
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// ReadinessHandler checks the backing stores.
type ReadinessHandler struct {
    DB    *sql.DB
    Redis *redis.Client // optional
}

// Ready returns 200 when MySQL (and Redis, when configured) answer a ping,
// 503 otherwise.
func (h *ReadinessHandler) Ready(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()

    checks := echo.Map{"database": "ok"}
    status := http.StatusOK
    if err := h.DB.PingContext(ctx); err != nil {
        checks["database"] = err.Error()
        status = http.StatusServiceUnavailable
    }
    if h.Redis != nil {
        checks["redis"] = "ok"
        if err := h.Redis.Ping(ctx).Err(); err != nil {
            checks["redis"] = err.Error()
            status = http.StatusServiceUnavailable
        }
    }
    return c.JSON(status, checks)
}
