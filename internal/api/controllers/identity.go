package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"givehub/internal/services"
	"givehub/pkg/middleware"
)

// identityFromContext reads the caller the auth middleware resolved.
// Returns nil for anonymous requests.
func identityFromContext(c *gin.Context) *services.Identity {
	raw := c.GetString(middleware.ContextAccountID)
	if raw == "" {
		return nil
	}
	accountID, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &services.Identity{
		AccountID: accountID,
		Role:      c.GetString(middleware.ContextRole),
	}
}
