package core

import (
	"context"
	"sync"
	"time"

	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// redisClient 全局Redis客户端实例
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// GetRedis 获取Redis客户端实例
// 连接不可用时会尝试重新连接
func GetRedis() (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err == nil {
			return redisClient, nil
		} else {
			logger.Warn("Redis连接不可用，尝试重新连接", zap.Error(err))
			_ = redisClient.Close()
		}
	}

	var err error
	redisClient, err = connectRedis()
	return redisClient, err
}

// NewRedisClient 创建Redis客户端，不检测连接
// 防重复锁用它拿到客户端，Redis暂时不可用时由锁的策略决定是否放行
func NewRedisClient() *redis.Client {
	redisConfig := config.Redis
	return redis.NewClient(&redis.Options{
		Addr:     redisConfig.GetAddr(),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
		PoolSize: redisConfig.PoolSize,
	})
}

// connectRedis 创建Redis连接并测试
func connectRedis() (*redis.Client, error) {
	client := NewRedisClient()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("Redis连接成功", zap.String("address", config.Redis.GetAddr()))
	return client, nil
}

// CloseRedis 关闭Redis连接
func CloseRedis() error {
	redisMu.Lock()
	defer redisMu.Unlock()
	if redisClient != nil {
		logger.Info("关闭Redis连接")
		err := redisClient.Close()
		redisClient = nil
		return err
	}
	return nil
}
