package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 单个依赖检查的超时
const healthCheckTimeout = 2 * time.Second

// HealthCheck 依赖检查，返回nil表示正常
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	checks map[string]HealthCheck
}

// NewHealthController checks: 依赖名称 -> 检查函数，例如 database、redis
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

type checkResult struct {
	Status    string `json:"status"`
	Latency   string `json:"latency"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (hc *HealthController) runChecks(ctx context.Context) (map[string]checkResult, bool) {
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	results := make(map[string]checkResult, len(names))
	for _, name := range names {
		start := time.Now()
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := hc.checks[name](checkCtx)
		cancel()

		result := checkResult{
			Status:    "ok",
			Latency:   time.Since(start).String(),
			Timestamp: start.Format(time.RFC3339),
		}
		if err != nil {
			healthy = false
			result.Status = "error"
			result.Error = err.Error()
			logger.Error("健康检查失败", zap.String("service", name), zap.Error(err))
		}
		results[name] = result
	}
	return results, healthy
}

// Health 健康检查，依赖异常时仍返回200，status为degraded
// @Summary 健康检查
// @Tags 健康检查
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	results, healthy := hc.runChecks(c.Request.Context())
	status := "ok"
	if !healthy {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"services":  results,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Readiness 就绪检查，依赖异常时返回503
// @Summary 就绪检查
// @Tags 健康检查
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /readiness [get]
func (hc *HealthController) Readiness(c *gin.Context) {
	results, healthy := hc.runChecks(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "services": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "services": results})
}

// Liveness 存活检查
// @Summary 存活检查
// @Tags 健康检查
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /liveness [get]
func (hc *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive", "timestamp": time.Now().Format(time.RFC3339)})
}
