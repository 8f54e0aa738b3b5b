// Package middleware HTTP中间件
//
// 包括：
// - 监控指标收集、请求ID
// - JWT解析、登录和权限校验
// - 耗时日志
// - 防重复提交
package middleware

import (
	"strconv"
	"time"

	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware Prometheus监控中间件
// 自动收集HTTP请求的监控指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		monitoring.GlobalMetrics.HTTPRequestsInFlight.Inc()
		defer monitoring.GlobalMetrics.HTTPRequestsInFlight.Dec()

		c.Next()

		// 使用路由模板作为endpoint，未匹配到路由的统一记为unmatched
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		monitoring.GlobalMetrics.RecordHTTPRequest(c.Request.Method, endpoint, statusCode, time.Since(start))
	}
}
