package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client), mr
}

// TestRedisLocker_SetNXAndDelete 测试加锁和释放
func TestRedisLocker_SetNXAndDelete(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	ok, err := locker.SetNX(ctx, "test:lock", 10*time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("test:lock"))
	assert.Equal(t, 10*time.Second, mr.TTL("test:lock"))

	value, _ := mr.Get("test:lock")
	assert.Equal(t, locker.Owner(), value)

	// 锁已存在
	ok, err = locker.SetNX(ctx, "test:lock", 10*time.Second)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, locker.Delete(ctx, "test:lock"))
	assert.False(t, mr.Exists("test:lock"))

	// 删除不存在的key不报错
	assert.NoError(t, locker.Delete(ctx, "test:lock"))
}

// TestRedisLocker_Check 测试查看锁状态
func TestRedisLocker_Check(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	info, err := locker.Check(ctx, "test:check")
	require.NoError(t, err)
	assert.False(t, info.Exists)

	_, err = locker.SetNX(ctx, "test:check", 5*time.Second)
	require.NoError(t, err)

	info, err = locker.Check(ctx, "test:check")
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, locker.Owner(), info.Owner)
	assert.Greater(t, info.TTL, time.Duration(0))
}

// TestRedisLocker_GuardTTL 锁没有释放时依赖TTL过期
func TestRedisLocker_GuardTTL(t *testing.T) {
	locker, mr := newTestLocker(t)
	g := guard.New(locker, guard.WithPrefix("blog:repeat:"))
	ctx := context.Background()

	// t=0 加锁，模拟进程崩溃不释放
	_, err := g.TryAcquire(ctx, "order:42", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("blog:repeat:order:42"))

	// t=1 重复请求
	mr.FastForward(time.Second)
	err = g.Do(ctx, "order:42", 5*time.Second, guard.OperationFunc(func(ctx context.Context) error { return nil }))
	assert.ErrorIs(t, err, guard.ErrRepeatRequest)

	// t=6 已过期，可以执行
	mr.FastForward(5 * time.Second)
	executed := false
	err = g.Do(ctx, "order:42", 5*time.Second, guard.OperationFunc(func(ctx context.Context) error {
		executed = true
		return nil
	}))
	assert.NoError(t, err)
	assert.True(t, executed)
	assert.False(t, mr.Exists("blog:repeat:order:42"))
}

// TestRedisLocker_GuardConcurrent 并发请求只有一个能执行
func TestRedisLocker_GuardConcurrent(t *testing.T) {
	locker, _ := newTestLocker(t)
	g := guard.New(locker)
	ctx := context.Background()

	var executed, inFlight, overlap int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(ctx, "article:create:1", time.Minute, guard.OperationFunc(func(ctx context.Context) error {
				if atomic.AddInt32(&inFlight, 1) > 1 {
					atomic.AddInt32(&overlap, 1)
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				atomic.AddInt32(&executed, 1)
				return nil
			}))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), overlap)
	assert.GreaterOrEqual(t, executed, int32(1))
}

// TestRedisLocker_StoreDown redis不可用时按策略处理
func TestRedisLocker_StoreDown(t *testing.T) {
	// 没有监听的端口
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	locker := NewRedisLocker(client)
	ctx := context.Background()

	executed := false
	err := guard.New(locker).Do(ctx, "order:42", 5*time.Second, guard.OperationFunc(func(ctx context.Context) error {
		executed = true
		return nil
	}))
	assert.NoError(t, err)
	assert.True(t, executed)

	err = guard.New(locker, guard.WithPolicy(guard.FailClosed)).Do(ctx, "order:42", 5*time.Second,
		guard.OperationFunc(func(ctx context.Context) error { return nil }))
	assert.ErrorIs(t, err, guard.ErrStoreUnavailable)
}

func TestMemoryInspector(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := guard.NewMemoryStore(func() time.Time { return now })
	inspector := NewMemoryInspector(store)
	ctx := context.Background()

	info, err := inspector.Check(ctx, "order:42")
	require.NoError(t, err)
	assert.False(t, info.Exists)

	ok, err := store.SetNX(ctx, "order:42", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(time.Second)
	info, err = inspector.Check(ctx, "order:42")
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, 4*time.Second, info.TTL)

	require.NoError(t, inspector.Delete(ctx, "order:42"))
	info, _ = inspector.Check(ctx, "order:42")
	assert.False(t, info.Exists)
}
