package config

import (
	"time"
)

// repeat 防重复提交配置
type repeat struct {
	Store      string        // 锁存储: redis, memory
	FailOpen   bool          // 存储不可用时是否放行
	DefaultTTL time.Duration // 规则未设置TTL时使用的默认值
	KeyPrefix  string        // 锁key前缀
}

var Repeat *repeat

func parseRepeat() {
	Repeat = &repeat{
		Store:      GetDefaultEnv("REPEAT_STORE", "redis"),
		FailOpen:   getEnvBool("REPEAT_FAIL_OPEN", true),
		DefaultTTL: getEnvDuration("REPEAT_DEFAULT_TTL", 10*time.Second),
		KeyPrefix:  GetDefaultEnv("REPEAT_KEY_PREFIX", "blog:repeat:"),
	}
}

func init() {
	parseRepeat()
}
