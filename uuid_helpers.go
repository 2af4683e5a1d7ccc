package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ensureTokenID assigns a jti when the claims do not carry one so every
// issued token is individually identifiable in logs.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims == nil {
		return
	}
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

// HasUserUUID reports whether the claims subject is a well formed uuid.
func HasUserUUID(claims AuthClaims) bool {
	if claims == nil {
		return false
	}
	_, err := uuid.Parse(claims.UserID())
	return err == nil
}
