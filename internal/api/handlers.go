package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/types"
)

// currentUserID pulls the authenticated user's id out of the gin context.
// The auth middleware guarantees it is present on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user not authenticated"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates service errors into the wire contract: validation
// failures are field→messages maps, auth failures and not-found carry a
// single detail message.
func respondError(c *gin.Context, err error) {
	if fieldErrs, ok := types.AsFieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, types.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": types.ErrInvalidCredentials.Error()})
	case errors.Is(err, types.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": types.ErrInvalidToken.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// bindJSON decodes the body and reports malformed JSON as a non-field
// validation error.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, types.FieldErrors{
			types.NonFieldKey: {"invalid request body"},
		})
		return false
	}
	return true
}
