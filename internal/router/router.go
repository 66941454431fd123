package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saniya-gs/health-recommendation-system/internal/handler"
)

// RegisterRoutes registers the unauthenticated operational endpoints:
// liveness, readiness and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadinessHandler) {
	e.GET("/healthz", handler.Health)
	if ready != nil {
		e.GET("/readyz", ready.Ready)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers /api/auth.  Register, login and logout are open;
// logout resolves the session itself so a stale cookie can still be
// cleared.  /me sits behind the session check.
func RegisterAuth(api *echo.Group, a *handler.AuthHandler, session echo.MiddlewareFunc) {
	g := api.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, session)
}
