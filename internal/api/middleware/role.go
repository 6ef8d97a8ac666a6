package middleware

import (
	"net/http"

	"apthire/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRole protects an endpoint from users whose current role is not listed.
// It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			abortUnauthorized(c, "Unauthorized")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "User doesn't have permission to access",
			"code":  "forbidden",
		})
	}
}
