package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// authenticated caller has one of the specified roles. The roles
// accepted correspond to the role field of the identity stored by
// JWTAuth. If the caller's role is not in the allowed set, the
// request is aborted with a 403 Forbidden response before any
// handler logic runs.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok || !allowed[ident.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
