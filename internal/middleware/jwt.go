package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// identityKey is the context key under which JWTAuth stores the
// verified caller identity. Handlers retrieve it via IdentityFrom;
// the raw claims are never read anywhere else.
const identityKey = "identity"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller's identity into the request context
// as an explicit model.Identity value. The provided secret must
// match the one used when issuing tokens. This middleware wraps all
// protected routes; downstream handlers and the role gate consume
// the identity, never the token itself.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret. Tokens signed with any
			// other method are rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			ident := model.Identity{
				UserID:    claimUint64(claims["sub"]),
				Email:     claimString(claims["email"]),
				Role:      claimString(claims["role"]),
				FirstName: claimString(claims["first_name"]),
				LastName:  claimString(claims["last_name"]),
			}
			if ident.UserID == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// claimUint64 converts a numeric JWT claim into a uint64. JSON
// numbers decode as float64; string-encoded numbers are parsed as a
// fallback. Unknown shapes yield zero.
func claimUint64(v interface{}) uint64 {
	switch t := v.(type) {
	case float64:
		return uint64(t)
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func claimString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
