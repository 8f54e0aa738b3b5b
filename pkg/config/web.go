package config

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// web 配置
type web struct {
	Host             string        // 监听主机
	Port             int           // 监听端口
	SessionSecretKey string        // 会话的secretKey
	SessionIDName    string        // 会话的cookie name
	SlowThreshold    time.Duration // 接口耗时告警阈值
}

// Address 获取web服务监听的地址
func (w *web) Address() string {
	return w.Host + ":" + strconv.Itoa(w.Port)
}

var Web *web

// parseWeb 解析web配置
func parseWeb() {
	Web = &web{
		Host:             GetDefaultEnv("WEB_HOST", "0.0.0.0"),
		Port:             getEnvInt("WEB_PORT", 8000),
		SessionSecretKey: GetDefaultEnv("SESSION_SECRET_KEY", generateRandomSessionKey()),
		SessionIDName:    GetDefaultEnv("SESSION_ID_NAME", "blog_sessionid"),
		SlowThreshold:    getEnvDuration("DURATION_LOG_THRESHOLD", time.Second),
	}
}

// generateRandomSessionKey 生成随机的会话密钥
// 如果环境变量未设置SESSION_SECRET_KEY，则生成一个32字节的随机密钥
func generateRandomSessionKey() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "Blog-Default-Session-Secret-Key-Please-Change-In-Production!"
	}
	return hex.EncodeToString(key)
}

func init() {
	parseWeb()
}
