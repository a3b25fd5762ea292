package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey      = "userID"
	UserCreatedKey = "userCreated"
)

// getJWTKey returns the shared verification key for identity-provider tokens.
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// IdentityClaims are the claims carried by an identity-provider token.
// The subject is the provider's opaque user identifier.
type IdentityClaims struct {
	jwt.RegisteredClaims
}

// resolveIdentity extracts and verifies the bearer token, returning the
// external identity the token was issued for.
func resolveIdentity(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.ErrUnauthorized
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", apperrors.ErrUnauthorized
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}

	return claims.Subject, nil
}

// AuthMiddleware resolves the authenticated principal for every protected
// route. The external identity from the token is mapped to a User row,
// created lazily on the principal's first authenticated access so that owned
// rows always have a valid owner reference. The response to an unresolvable
// principal is uniform across all failure modes.
func AuthMiddleware(users services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID, err := resolveIdentity(c)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			return
		}

		user, created, err := users.GetOrCreateUser(externalID)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.ErrInternalServer.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrInternalServer.Code,
					"message": apperrors.ErrInternalServer.Message,
				},
			})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserCreatedKey, created)
		c.Next()
	}
}
