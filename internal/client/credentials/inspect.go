package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be learned from a token without the signing key.
type TokenInfo struct {
	IsJWT     bool
	Subject   string
	ExpiresAt time.Time
}

// Inspect decodes JWT claims without verifying the signature. Opaque tokens
// yield a zero TokenInfo with IsJWT=false.
func Inspect(token string) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// Expired reports whether the token carries an expiry that is not after now.
// Tokens without a known expiry never count as expired.
func (i TokenInfo) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(i.ExpiresAt)
}
