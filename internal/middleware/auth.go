package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RohanMehta-11/ligo/pkg/token"
)

const (
	AuthUserIDKey      = "auth_user_id"
	AuthExternalUIDKey = "auth_external_uid"
)

// AuthMiddleware validates the bearer access token and stores the
// authenticated user id in the request context. All token failures are
// surfaced as one generic 401; the cause only goes to the log.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateAccessToken(bearerToken[1], jwtSecret)
		if err != nil {
			log.Debug().Err(err).Msg("access token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthExternalUIDKey, claims.ExternalUID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user id set by
// AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}
