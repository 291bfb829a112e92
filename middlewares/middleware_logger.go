package middlewares

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/qrmenu-app/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := sanitizeQuery(c.Request.URL.Query())

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		utils.InfoLogger.Printf("%s | %3d | %13v | %15s | %s", c.Request.Method, status, latency, c.ClientIP(), path)
	}
}

// sanitizeQuery -> token sesi customer lewat ?t=; kredensial hidup
// tidak boleh ikut masuk access log
func sanitizeQuery(values url.Values) string {
	if values.Has("t") {
		values.Set("t", "REDACTED")
	}
	return values.Encode()
}
