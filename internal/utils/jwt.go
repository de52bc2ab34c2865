package utils // package utils provides helper functions for token creation and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AccessToken represents a signed JWT access token along with its
// expiry. The Token field contains the JWT string. Exp stores the
// expiration timestamp as a time.Time. The token is sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT carrying the caller's
// identity. Besides the standard subject (sub), expiration (exp) and
// issued at (iat) claims, the token embeds email, role and display
// names so the presentation layer can render the session without a
// follow-up request. The TTL is expressed in hours; the application
// issues tokens with a fixed 24 hour lifetime.
func NewAccessToken(secret string, u model.User, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":        u.ID,
		"email":      u.Email,
		"role":       u.Role,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"exp":        exp.Unix(),
		"iat":        time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
