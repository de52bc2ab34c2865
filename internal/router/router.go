package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup and login endpoints. Both issue
// tokens and therefore live outside any JWT-protected group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/signup", a.Signup)
	e.POST("/login", a.Login)
}

// RegisterPublic registers unauthenticated browse endpoints. The
// menu is readable by guests; the optional middleware (typically the
// redis response cache) is applied to it.
func RegisterPublic(e *echo.Echo, m *handler.MenuHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/menu", m.ListMenu, mw...)
}
