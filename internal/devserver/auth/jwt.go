// Package auth issues and verifies the HS256 access tokens of the development
// backend. Shoppers and administrators get tokens of different roles; a token
// of one role is never accepted where the other is required.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Role tells shopper tokens from administrator tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims carries the standard claims plus the role. The principal id is the
// subject.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// GenerateToken signs a token for principalID valid for validityDuration.
func GenerateToken(principalID string, role Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// PrincipalFromToken verifies tokenString and returns its subject when the
// role matches. Expired tokens yield common.ErrTokenExpired, everything else
// common.ErrInvalidToken.
func PrincipalFromToken(tokenString string, role Role, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Role != role || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
