package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hayumabar/backend/pkg/response"
)

// UserID returns the authenticated user's ID from context. Call after JWT.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}

// RequireResourceOwner checks that the authenticated user owns the resource.
// Writes a 401 response and returns false on mismatch, so handlers can gate
// update/delete with a single call regardless of resource kind.
func RequireResourceOwner(c *gin.Context, ownerID uuid.UUID) bool {
	if UserID(c) != ownerID {
		response.Unauthorized(c, "you do not own this resource")
		return false
	}
	return true
}
