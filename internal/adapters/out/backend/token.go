package backend

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt"
)

// accessTokenExpiry reads the exp claim without verifying the signature; the
// backend verifies its own tokens. It returns the zero time when the token is
// not a JWT or has no expiry.
func accessTokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0).UTC()
	case json.Number:
		if v, err := exp.Int64(); err == nil {
			return time.Unix(v, 0).UTC()
		}
	}
	return time.Time{}
}
