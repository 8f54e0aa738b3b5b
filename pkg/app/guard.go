package app

import (
	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/codelieche/blog/pkg/services"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// newGuard 根据配置创建防重复锁
// REPEAT_STORE=memory 时使用进程内存储，只适合单实例部署
func newGuard(client redis.Cmdable) (*guard.Guard, services.LockInspector) {
	var (
		store     guard.Store
		inspector services.LockInspector
	)

	switch config.Repeat.Store {
	case "memory":
		memory := guard.NewMemoryStore(nil)
		store, inspector = memory, services.NewMemoryInspector(memory)
		logger.Warn("防重复锁使用内存存储，多实例部署时不能互斥")
	default:
		locker := services.NewRedisLocker(client)
		store, inspector = locker, locker
	}

	policy := guard.FailOpen
	if !config.Repeat.FailOpen {
		policy = guard.FailClosed
	}

	g := guard.New(store,
		guard.WithPolicy(policy),
		guard.WithDefaultTTL(config.Repeat.DefaultTTL),
		guard.WithPrefix(config.Repeat.KeyPrefix),
		guard.WithObserver(func(name string, outcome guard.Outcome) {
			monitoring.GlobalMetrics.RecordRepeatGuard(name, string(outcome))
		}),
	)
	logger.Info("防重复锁已初始化",
		zap.String("store", config.Repeat.Store),
		zap.String("policy", policy.String()),
		zap.Duration("default_ttl", g.DefaultTTL()))
	return g, inspector
}
