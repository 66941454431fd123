package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"
)

// RequestLogger logs one structured line per request through zap.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogURI:       true,
        LogMethod:    true,
        LogStatus:    true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            fields := []zap.Field{
                zap.String("method", v.Method),
                zap.String("uri", v.URI),
                zap.Int("status", v.Status),
                zap.Duration("latency", v.Latency),
                zap.String("remote_ip", v.RemoteIP),
            }
            if v.RequestID != "" {
                fields = append(fields, zap.String("request_id", v.RequestID))
            }
            if id, ok := UserID(c); ok {
                fields = append(fields, zap.Uint64("user_id", id))
            }
            if v.Error != nil {
                log.Error("request", append(fields, zap.Error(v.Error))...)
                return nil
            }
            log.Info("request", fields...)
            return nil
        },
    })
}
