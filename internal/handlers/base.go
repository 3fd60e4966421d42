package handlers

import (
	"errors"
	"net/http"

	"bookstore/internal/identity"
	"bookstore/internal/middleware"
	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the session user loaded by middleware.LoadUser, or
// nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// Fail maps a service error onto the JSON error envelope.
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidParent),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidReaction),
		errors.Is(err, services.ErrInvalidBook),
		errors.Is(err, identity.ErrUnknownRole):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, identity.ErrLoginTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		var se *services.StorageError
		if errors.As(err, &se) {
			// Retryable from the caller's point of view.
			c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable, retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
