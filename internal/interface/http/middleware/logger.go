package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成请求ID（优先使用上游传入的X-Request-ID）
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 不记录请求体（上传图片可能接近1MB）
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		event := logger.L().Info()
		switch {
		case status >= 500:
			event = logger.L().Error()
		case latency > slowRequestThreshold || status >= 400:
			event = logger.L().Warn()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Uint("user_id", GetUserID(c))
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("http request")
	}
}
