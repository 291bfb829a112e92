package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yeremiapane/qrmenu-app/utils"
)

// bodyWriter menangkap body response sambil tetap meneruskannya ke client
type bodyWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// MenuCache -> read-through cache Redis untuk endpoint menu publik.
// Menu dibaca jauh lebih sering daripada diubah; cache kadaluarsa
// sendiri lewat TTL, tidak ada invalidation aktif.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMenuCache -> nil kalau addr kosong (cache dimatikan)
func NewMenuCache(addr string) *MenuCache {
	if addr == "" {
		return nil
	}
	return &MenuCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    30 * time.Second,
	}
}

// Cache -> middleware gin; hanya GET yang dicache
func (mc *MenuCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mc == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "menucache:" + c.Request.URL.Path + "?" + c.Request.URL.RawQuery
		ctx := context.Background()

		if cached, err := mc.client.Get(ctx, key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		if c.Writer.Status() == http.StatusOK && len(bw.body) > 0 {
			if err := mc.client.Set(ctx, key, bw.body, mc.ttl).Err(); err != nil {
				utils.ErrorLogger.Printf("Error caching menu response: %v", err)
			}
		}
	}
}
