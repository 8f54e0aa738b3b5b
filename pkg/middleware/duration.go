package middleware

import (
	"time"

	"github.com/codelieche/blog/pkg/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DurationLog 记录处理耗时，超过threshold打印警告日志
// threshold必须大于0，否则注册路由时panic
func DurationLog(name string, threshold time.Duration) gin.HandlerFunc {
	services.CheckThreshold(name, threshold)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		services.ObserveDuration(name, threshold, time.Since(start),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", GetRequestID(c)),
		)
	}
}
