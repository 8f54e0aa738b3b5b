package logger

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/codelieche/blog/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 全局日志器
var (
	logger *zap.Logger
	level  = zap.NewAtomicLevel()
	once   sync.Once
	mu     sync.RWMutex
)

// createFileSyncer 创建按大小滚动的文件写入器
func createFileSyncer() zapcore.WriteSyncer {
	logConfig := config.Log

	logDir := path.Dir(logConfig.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "创建日志目录失败: %v\n", err)
		return zapcore.AddSync(os.Stdout)
	}

	writer := &lumberjack.Logger{
		Filename:   logConfig.FilePath,
		MaxSize:    logConfig.MaxSize,
		MaxAge:     logConfig.MaxAge,
		MaxBackups: logConfig.MaxBackups,
		Compress:   logConfig.Compress,
	}
	return zapcore.AddSync(writer)
}

// newEncoder 根据配置创建json或console编码器
func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// newWriteSyncer 日志输出到文件/console
func newWriteSyncer(output string) zapcore.WriteSyncer {
	switch output {
	case "all", "both":
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), createFileSyncer())
	case "file":
		return createFileSyncer()
	default:
		return zapcore.AddSync(os.Stdout)
	}
}

// InitLogger 初始化日志
func InitLogger() {
	once.Do(func() {
		logConfig := config.Log
		setLogLevel(logConfig.Level)

		core := zapcore.NewCore(newEncoder(logConfig.Format), newWriteSyncer(logConfig.Output), level)
		l := zap.New(core,
			zap.AddCaller(),
			zap.AddCallerSkip(1),
			zap.AddStacktrace(zapcore.FatalLevel),
		)

		mu.Lock()
		if logger == nil {
			logger = l
		}
		mu.Unlock()
		zap.ReplaceGlobals(l)
	})
}

// ReplaceLogger 替换全局日志器，返回恢复函数
// 测试中用来接入 zaptest/observer
func ReplaceLogger(l *zap.Logger) func() {
	InitLogger()
	mu.Lock()
	prev := logger
	logger = l.WithOptions(zap.AddCallerSkip(1))
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// 设置日志级别
func setLogLevel(levelStr string) {
	var zapLevel zapcore.Level

	switch strings.ToLower(levelStr) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	case "fatal":
		zapLevel = zapcore.FatalLevel
	default:
		zapLevel = zapcore.InfoLevel
		fmt.Fprintf(os.Stderr, "无效的日志级别: %s, 使用默认级别 info\n", levelStr)
	}

	level.SetLevel(zapLevel)
}

// GetLevel 获取当前日志级别
func GetLevel() string {
	return level.String()
}

// SetLevel 设置日志级别
func SetLevel(levelStr string) {
	setLogLevel(levelStr)
}

func current() *zap.Logger {
	InitLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Logger 获取logger实例
func Logger() *zap.Logger {
	return current().WithOptions(zap.AddCallerSkip(-1))
}

// Debug 级别日志
func Debug(msg string, fields ...zap.Field) {
	current().Debug(msg, fields...)
}

// Info 级别日志
func Info(msg string, fields ...zap.Field) {
	current().Info(msg, fields...)
}

// Warn 级别日志
func Warn(msg string, fields ...zap.Field) {
	current().Warn(msg, fields...)
}

// Error 级别日志
func Error(msg string, fields ...zap.Field) {
	current().Error(msg, fields...)
}

// Fatal 级别日志
func Fatal(msg string, fields ...zap.Field) {
	current().Fatal(msg, fields...)
}

// With 包装字段，返回新的logger
func With(fields ...zap.Field) *zap.Logger {
	return Logger().With(fields...)
}

// Sync 刷新日志缓存到磁盘
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// Infof 格式化的Info日志
func Infof(format string, args ...interface{}) {
	current().Info(fmt.Sprintf(format, args...))
}

// Warnf 格式化的Warn日志
func Warnf(format string, args ...interface{}) {
	current().Warn(fmt.Sprintf(format, args...))
}

// Errorf 格式化的Error日志
func Errorf(format string, args ...interface{}) {
	current().Error(fmt.Sprintf(format, args...))
}
