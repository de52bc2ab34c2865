package middleware

// identity.go defines helper functions shared across middleware files
// and handlers. IdentityFrom pulls the verified caller identity that
// JWTAuth stored in the Echo context; currentUserID derives the
// rate-limit key segment for the caller, falling back to "anon" for
// unauthenticated requests.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// IdentityFrom returns the caller identity placed in the context by
// JWTAuth. The second return value is false when the request was not
// authenticated (e.g. on public routes).
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	ident, ok := c.Get(identityKey).(model.Identity)
	return ident, ok
}

// currentUserID returns a stable string for rate-limit keys.
func currentUserID(c echo.Context) string {
	if ident, ok := IdentityFrom(c); ok && ident.UserID != 0 {
		return strconv.FormatUint(ident.UserID, 10)
	}
	return "anon"
}
