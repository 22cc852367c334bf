package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
)

// CurrentUserID returns the authenticated user's id, 0 when unauthenticated.
func CurrentUserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(int64)
	return userID
}

// CurrentRole returns the authenticated user's role.
func CurrentRole(c *gin.Context) (models.RoleType, bool) {
	value, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.RoleType)
	return role, ok
}

// CurrentScope resolves the trainee visibility of the authenticated user.
func CurrentScope(c *gin.Context) (auth.Scope, error) {
	role, _ := CurrentRole(c)
	return auth.ResolveScope(role, c.GetString(ContextDepartment))
}
