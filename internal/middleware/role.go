package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{})
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextUserRole)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		roleStr, _ := roleVal.(string)
		role, err := models.ParseRole(roleStr)
		if err != nil {
			response.Unauthorized(c, "unknown role")
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Unauthorized(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
