package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterCustomer registers the authenticated endpoints under /v1.
// All routes require a valid JWT; both roles are accepted because an
// administrator may also browse tables and book for themselves.
// Customers can list tables, create reservations, view their own
// reservations and withdraw a reservation while it is pending. The
// optional middleware (the redis response cache) is applied to the
// tables listing only, since reservation data must never be served
// stale.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, t *handler.TableHandler, jwtSecret string, tablesMW ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleAdmin),
	)
	g.GET("/tables", t.ListTables, tablesMW...)
	g.POST("/reservations", h.CreateReservation)
	g.GET("/my-reservations", h.ListMyReservations)
	g.DELETE("/reservations/:id", h.DeleteReservation)
}
