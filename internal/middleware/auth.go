package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/models"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// TokenResolver maps an opaque bearer token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*models.User, error)
}

// AuthMiddleware creates a middleware that resolves bearer tokens before any
// handler logic runs.
func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid authentication token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}
