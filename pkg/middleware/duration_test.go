package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDurationLog(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	restore := logger.ReplaceLogger(zap.New(obs))
	defer restore()

	r := gin.New()
	r.GET("/fast", DurationLog("fast", time.Second), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/slow", DurationLog("slow", time.Millisecond), func(c *gin.Context) {
		time.Sleep(5 * time.Millisecond)
		c.String(http.StatusOK, "ok")
	})

	doRequest(r, http.MethodGet, "/fast", nil)
	assert.Equal(t, 0, logs.Len())

	doRequest(r, http.MethodGet, "/slow", nil)
	if assert.Equal(t, 1, logs.Len()) {
		entry := logs.All()[0]
		assert.Contains(t, entry.Message, "slow 耗时")
		assert.Equal(t, "/slow", entry.ContextMap()["path"])
	}
}

func TestDurationLog_InvalidThreshold(t *testing.T) {
	assert.Panics(t, func() { DurationLog("zero", 0) })
	assert.Panics(t, func() { DurationLog("negative", -time.Second) })
}
