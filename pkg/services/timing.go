package services

import (
	"fmt"
	"time"

	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
)

// CheckThreshold 阈值必须大于0
func CheckThreshold(name string, threshold time.Duration) {
	if threshold <= 0 {
		panic(fmt.Sprintf("%s: 耗时阈值必须大于0, 当前为%s", name, threshold))
	}
}

// ObserveDuration 记录耗时，超过阈值时打印警告日志
func ObserveDuration(name string, threshold, elapsed time.Duration, fields ...zap.Field) {
	slow := elapsed > threshold
	monitoring.GlobalMetrics.RecordCall(name, elapsed, slow)
	if slow {
		fields = append([]zap.Field{
			zap.String("name", name),
			zap.Int64("elapsed_ms", elapsed.Milliseconds()),
			zap.Duration("threshold", threshold),
		}, fields...)
		logger.Warn(fmt.Sprintf("%s 耗时%dms", name, elapsed.Milliseconds()), fields...)
	}
}

// Timed 执行fn并记录耗时，threshold必须大于0
func Timed(name string, threshold time.Duration, fn func() error) error {
	CheckThreshold(name, threshold)
	start := time.Now()
	defer func() {
		ObserveDuration(name, threshold, time.Since(start))
	}()
	return fn()
}
