package middleware

import (
	"Fanscope/internal/api/config"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/platform/ratelimit"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 面向终端用户的 API 限流，按用户隔离，未登录按客户端 IP
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Cfg.Server
	limit := cfg.APIRateLimit
	if limit <= 0 {
		limit = 120
	}
	window := time.Duration(cfg.APIRateWindow) * time.Second
	if window <= 0 {
		window = time.Minute
	}

	limiter := ratelimit.New(cfg.APIRateAlgo, limit, window)

	return func(c *gin.Context) {
		key := consts.APIRateKey
		if userID := GetUserID(c); userID > 0 {
			key += strconv.FormatUint(userID, 10)
		} else {
			key += c.ClientIP()
		}

		if !limiter.Allow(key) {
			response.Fail(c, response.TooManyRequests, "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}

		c.Next()
	}
}
