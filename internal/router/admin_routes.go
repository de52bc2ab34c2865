package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterAdmin registers admin-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the admin role; the role gate
// rejects any other caller before handler logic runs. Admins oversee
// the full reservation book, drive status transitions and manage the
// menu.
func RegisterAdmin(e *echo.Echo, r *handler.AdminReservationHandler, m *handler.MenuHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/reservations", r.ListReservations)
	g.PATCH("/reservations/:id/status", r.UpdateStatus)
	g.POST("/menu", m.CreateMenuItem)
	g.PATCH("/menu/:id", m.UpdateMenuItem)
	g.DELETE("/menu/:id", m.DeleteMenuItem)
}
