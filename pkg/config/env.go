package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetDefaultEnv 获取环境变量，若不存在则返回默认值
// key: 环境变量名
// value: 默认值
// return: 环境变量值
func GetDefaultEnv(key, value string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return value
	}
	return os.ExpandEnv(val)
}

// getEnvInt 读取整数类型的环境变量，解析失败时返回默认值
func getEnvInt(key string, value int) int {
	v, err := strconv.Atoi(GetDefaultEnv(key, ""))
	if err != nil {
		return value
	}
	return v
}

// getEnvBool 读取布尔类型的环境变量
func getEnvBool(key string, value bool) bool {
	v, err := strconv.ParseBool(GetDefaultEnv(key, ""))
	if err != nil {
		return value
	}
	return v
}

// getEnvDuration 读取时长类型的环境变量，例如：10s、5m、2h
func getEnvDuration(key string, value time.Duration) time.Duration {
	v, err := time.ParseDuration(GetDefaultEnv(key, ""))
	if err != nil || v <= 0 {
		return value
	}
	return v
}

// getEnvList 读取逗号分隔的列表，会去掉空白项
func getEnvList(key string, value []string) []string {
	raw := GetDefaultEnv(key, "")
	if raw == "" {
		return value
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
