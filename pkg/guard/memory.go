package guard

import (
	"context"
	"sync"
	"time"
)

// sweepInterval 两次清理过期key的最小间隔
const sweepInterval = time.Minute

// MemoryStore 进程内的锁存储，用于测试和单实例部署
// 过期的key在SetNX时按sweepInterval批量清理，不依赖后台goroutine
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore 创建内存存储，now为nil时使用time.Now
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{entries: make(map[string]time.Time), now: now, lastSweep: now()}
}

// sweep 删除所有过期的key，调用方持有锁
func (s *MemoryStore) sweep(now time.Time) {
	for key, expireAt := range s.entries {
		if !now.Before(expireAt) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	if expireAt, ok := s.entries[key]; ok && now.Before(expireAt) {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Exists key是否存在且未过期
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expireAt, ok := s.entries[key]
	if ok && !s.now().Before(expireAt) {
		delete(s.entries, key)
		return false, nil
	}
	return ok, nil
}

// TTL key的剩余时间，不存在或已过期时返回false
func (s *MemoryStore) TTL(ctx context.Context, key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expireAt, ok := s.entries[key]
	if !ok {
		return 0, false
	}
	ttl := expireAt.Sub(s.now())
	if ttl <= 0 {
		delete(s.entries, key)
		return 0, false
	}
	return ttl, true
}
