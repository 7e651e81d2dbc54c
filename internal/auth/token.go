// Package auth inspects stored access tokens. The server issues JWTs; the
// client never verifies signatures, it only reads the expiry claim to decide
// when to send the user back to the login screen.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the expiry claim of a JWT access token. ok is false
// when the token is not a parseable JWT or carries no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token's expiry has passed. Opaque tokens
// without a readable expiry are never considered expired; the server rejects
// them if they are.
func Expired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return now.After(exp)
}
