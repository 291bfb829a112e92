package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/qrmenu-app/utils"
)

// RequireRole -> batasi handler ke role tertentu (ADMIN selalu lolos)
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		role, _ := roleValue.(string)
		if role != "ADMIN" && !allowed[role] {
			utils.RespondError(c, http.StatusForbidden, utils.ErrNoPermission)
			c.Abort()
			return
		}

		c.Next()
	}
}
