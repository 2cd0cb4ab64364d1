package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rewoven/marketplace-backend/internal/services"
)

// statusForError maps service errors to distinct HTTP statuses so callers
// can tell insufficient funds from a missing item from a system failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInsufficientPoints):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrItemNotActive):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidEarnKind),
		errors.Is(err, services.ErrInvalidFile),
		errors.Is(err, services.ErrCategoryExists):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status and the error message.
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// actorFromClaims extracts the acting account ID from the JWT claims set by
// the auth middleware.
func actorFromClaims(c *gin.Context) (string, bool) {
	value, ok := c.Get("claims")
	if !ok {
		return "", false
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok && sub != ""
}
