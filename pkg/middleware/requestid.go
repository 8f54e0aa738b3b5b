package middleware

import (
	"github.com/codelieche/blog/pkg/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID的请求头/响应头
const RequestIDHeader = "X-Request-ID"

// RequestID 请求ID中间件，客户端没有传时生成一个
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(core.ContextKeyRequestID, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID 获取当前请求的ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(core.ContextKeyRequestID)
}
