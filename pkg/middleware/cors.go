// Package middleware CORS跨域中间件
//
// 提供CORS跨域资源共享支持，允许前端应用访问API
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware CORS跨域中间件
// 应该在认证中间件之前使用，tokenHeader是携带JWT的请求头
//
// 使用方式：
//
//	router.Use(middleware.CORSMiddleware(config.Auth.Header))
func CORSMiddleware(tokenHeader string) gin.HandlerFunc {
	allowHeaders := []string{
		"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
		"X-Requested-With", RequestIDHeader,
	}
	if tokenHeader != "" {
		allowHeaders = append(allowHeaders, tokenHeader)
	}
	allow := strings.Join(allowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", allow)
		c.Header("Access-Control-Expose-Headers", "Content-Length, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400") // 24小时

		// 预检请求
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
