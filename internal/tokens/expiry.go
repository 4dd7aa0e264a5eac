// Package tokens inspects session tokens without verifying them.
//
// The client treats tokens as opaque credentials. When a token happens to be a
// JWT, its exp claim lets the client drop a session the backend would reject
// anyway. Signatures are never checked here; the backend remains the authority.
package tokens

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the exp claim of a JWT-shaped token.
// ok is false for opaque tokens and for JWTs without an exp claim.
func Expiry(token string) (exp time.Time, ok bool) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token carries an exp claim at or before now.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	if !ok {
		return false
	}
	return !now.Before(exp)
}
