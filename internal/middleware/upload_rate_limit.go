package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/vouchly/backend/internal/config"
	"go.uber.org/zap"
)

// UploadRateLimit limits how many upload sessions one client may open per
// tenant within a window. Only session-creating POSTs count; presign and
// complete calls ride on an already-admitted session. Fails open when Redis
// is unreachable.
func UploadRateLimit(redisClient *redis.Client, cfg *config.Config, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || !isSessionInitRoute(c.FullPath()) {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("upload_limit:%s:%s", c.Param("slug"), c.ClientIP())

		count, err := redisClient.Get(ctx, key).Int()
		if err == redis.Nil {
			if err := redisClient.Set(ctx, key, 1, cfg.UploadRateLimitWindow).Err(); err != nil {
				log.Warn("upload rate limiter failed to set key", zap.Error(err))
			}
			c.Next()
			return
		}
		if err != nil {
			log.Warn("upload rate limiter failed to get key", zap.Error(err))
			c.Next()
			return
		}
		if count >= cfg.UploadRateLimitRequests {
			ttl, _ := redisClient.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":          "upload rate limit exceeded",
				"retry_after":    ttl.Seconds(),
				"max_uploads":    cfg.UploadRateLimitRequests,
				"window_seconds": cfg.UploadRateLimitWindow.Seconds(),
			})
			c.Abort()
			return
		}

		redisClient.Incr(ctx, key)
		c.Next()
	}
}

// isSessionInitRoute matches the registered init route pattern, so presign,
// complete and abort calls never count against the budget
func isSessionInitRoute(route string) bool {
	return strings.HasSuffix(route, "/uploads/multipart/init/:slug")
}
