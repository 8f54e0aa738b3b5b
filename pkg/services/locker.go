package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RedisLocker 基于Redis的防重复锁存储
// 加锁: SET key owner NX PX ttl；释放: DEL key
type RedisLocker struct {
	client redis.Cmdable
	owner  string
}

// NewRedisLocker 创建Redis锁存储
func NewRedisLocker(client redis.Cmdable) *RedisLocker {
	return &RedisLocker{
		client: client,
		owner:  newOwnerID(),
	}
}

// newOwnerID 锁的值，记录是哪个实例加的锁，排查问题时使用
func newOwnerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return host + ":" + uuid.NewString()[:8]
}

// Owner 当前实例写入锁的值
func (rl *RedisLocker) Owner() string {
	return rl.owner
}

// SetNX 实现guard.Store
func (rl *RedisLocker) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	success, err := rl.client.SetNX(ctx, key, rl.owner, ttl).Result()
	if err != nil {
		logger.Error("failed to acquire lock", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return success, nil
}

// Delete 实现guard.Store，不校验锁的拥有者
func (rl *RedisLocker) Delete(ctx context.Context, key string) error {
	if err := rl.client.Del(ctx, key).Err(); err != nil {
		logger.Error("failed to release lock", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// LockInfo 锁的状态
type LockInfo struct {
	Key    string        `json:"key"`
	Exists bool          `json:"exists"`
	Owner  string        `json:"owner,omitempty"`
	TTL    time.Duration `json:"ttl"`
}

// Check 查看锁是否存在以及剩余时间
func (rl *RedisLocker) Check(ctx context.Context, key string) (*LockInfo, error) {
	info := &LockInfo{Key: key}
	owner, err := rl.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return info, nil
		}
		logger.Error("failed to check lock status", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	info.Exists = true
	info.Owner = owner

	ttl, err := rl.client.PTTL(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	info.TTL = ttl
	return info, nil
}

// LockInspector 查看和强制释放锁，用于管理接口
type LockInspector interface {
	Check(ctx context.Context, key string) (*LockInfo, error)
	Delete(ctx context.Context, key string) error
}

// NewMemoryInspector 内存锁存储的LockInspector
func NewMemoryInspector(store *guard.MemoryStore) LockInspector {
	return &memoryInspector{store: store}
}

type memoryInspector struct {
	store *guard.MemoryStore
}

func (m *memoryInspector) Check(ctx context.Context, key string) (*LockInfo, error) {
	info := &LockInfo{Key: key}
	if ttl, ok := m.store.TTL(ctx, key); ok {
		info.Exists = true
		info.Owner = "local"
		info.TTL = ttl
	}
	return info, nil
}

func (m *memoryInspector) Delete(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}

var (
	_ guard.Store   = (*RedisLocker)(nil)
	_ LockInspector = (*RedisLocker)(nil)
)
