package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// AuthMiddleware -> staff bearer token. User harus masih ada dan aktif,
// scope tenant diambil dari row user (bukan dari klaim saja).
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseStaffToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or inactive user"))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("tenant_id", user.TenantID)
		c.Set("role", user.Role)

		c.Next()
	}
}

// SessionAuthMiddleware -> token QR customer, dari query ?t= atau header.
// Sesi yang sudah tergeser open berikutnya ditolak di sini.
func SessionAuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("t")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("session token required"))
			c.Abort()
			return
		}

		scope, err := sessions.Validate(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired session"))
			c.Abort()
			return
		}

		c.Set("session_scope", scope)
		c.Next()
	}
}

// SessionScope -> ambil scope sesi yang di-set SessionAuthMiddleware
func SessionScope(c *gin.Context) (*services.SessionContext, bool) {
	v, ok := c.Get("session_scope")
	if !ok {
		return nil, false
	}
	scope, ok := v.(*services.SessionContext)
	return scope, ok
}
