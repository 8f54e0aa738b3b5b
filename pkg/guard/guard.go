// Package guard 防重复提交
//
// 同一个key的操作同一时间只允许执行一个：执行前在共享存储中 SET key NX PX ttl，
// 执行完成后(成功、失败、panic)删除key。进程崩溃时key依赖TTL自动过期。
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
)

var (
	// ErrRepeatRequest 相同的操作正在执行
	ErrRepeatRequest = errors.New("重复请求")
	// ErrStoreUnavailable 锁存储不可用且策略为FailClosed
	ErrStoreUnavailable = errors.New("防重复锁存储不可用")
	// ErrInvalidTTL TTL不能为负数
	ErrInvalidTTL = errors.New("防重复锁TTL不能为负数")
)

// Store 锁存储
// SetNX 必须是原子操作: key不存在时写入并设置过期时间，返回是否写入成功
type Store interface {
	SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Policy 锁存储不可用时的处理策略
type Policy int

const (
	// FailOpen 放行，记录警告日志
	FailOpen Policy = iota
	// FailClosed 拒绝执行，返回ErrStoreUnavailable
	FailClosed
)

func (p Policy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

// Outcome 加锁/释放的结果，用于监控
type Outcome string

const (
	OutcomeAcquired      Outcome = "acquired"
	OutcomeRejected      Outcome = "rejected"
	OutcomeBypassed      Outcome = "bypassed"
	OutcomeUnavailable   Outcome = "unavailable"
	OutcomeCanceled      Outcome = "canceled"
	OutcomeReleased      Outcome = "released"
	OutcomeReleaseFailed Outcome = "release_failed"
)

// Observer 每次加锁/释放后回调，name是规则名称，不是key
// key里通常带有用户id、ip等，不能直接作为监控标签
type Observer func(name string, outcome Outcome)

const (
	defaultTTL     = 10 * time.Second
	releaseTimeout = 3 * time.Second

	// UnnamedRule 没有规则名称时回调使用的名称
	UnnamedRule = "unnamed"
)

// Guard 防重复执行
type Guard struct {
	store      Store
	policy     Policy
	defaultTTL time.Duration
	prefix     string
	observer   Observer
}

// Option Guard配置项
type Option func(*Guard)

// WithPolicy 设置存储不可用时的策略
func WithPolicy(policy Policy) Option {
	return func(g *Guard) { g.policy = policy }
}

// WithDefaultTTL ttl为0时使用的默认值
func WithDefaultTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		if ttl > 0 {
			g.defaultTTL = ttl
		}
	}
}

// WithPrefix 所有key加上前缀
func WithPrefix(prefix string) Option {
	return func(g *Guard) { g.prefix = prefix }
}

// WithObserver 设置回调
func WithObserver(observer Observer) Option {
	return func(g *Guard) { g.observer = observer }
}

// New 创建Guard，默认策略为FailOpen
func New(store Store, opts ...Option) *Guard {
	g := &Guard{
		store:      store,
		policy:     FailOpen,
		defaultTTL: defaultTTL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Policy 当前策略
func (g *Guard) Policy() Policy {
	return g.policy
}

// DefaultTTL 默认的TTL
func (g *Guard) DefaultTTL() time.Duration {
	return g.defaultTTL
}

// StoreKey 加上前缀后写入存储的key
func (g *Guard) StoreKey(key string) string {
	return g.prefix + key
}

func (g *Guard) observe(name string, outcome Outcome) {
	if g.observer == nil {
		return
	}
	if name == "" {
		name = UnnamedRule
	}
	g.observer(name, outcome)
}

// TryAcquire 尝试加锁
// 成功时返回release函数，调用方必须在所有退出路径上调用它(通常使用defer)。
// 锁已被占用时返回ErrRepeatRequest。
// 存储不可用时：FailOpen返回空的release函数和nil，FailClosed返回ErrStoreUnavailable。
// ctx已经取消时返回ctx.Err()，不会按存储不可用处理。
func (g *Guard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error) {
	return g.Acquire(ctx, Rule{TTL: ttl}, key)
}

// Acquire 同TryAcquire，TTL取自rule，回调使用rule.Name
func (g *Guard) Acquire(ctx context.Context, rule Rule, key string) (release func(), err error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	ttl := rule.TTL
	if ttl == 0 {
		ttl = g.defaultTTL
	}
	name := rule.Name
	storeKey := g.StoreKey(key)

	// 调用方已经放弃(例如客户端断开)，此时放行会和持有锁的请求并发执行
	if err := ctx.Err(); err != nil {
		g.observe(name, OutcomeCanceled)
		return nil, err
	}

	ok, err := g.store.SetNX(ctx, storeKey, ttl)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			g.observe(name, OutcomeCanceled)
			logger.Info("加锁时请求已取消", zap.String("key", storeKey), zap.Error(err))
			return nil, ctxErr
		}
		if g.policy == FailClosed {
			g.observe(name, OutcomeUnavailable)
			logger.Error("防重复锁存储不可用，拒绝执行",
				zap.String("key", storeKey), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		g.observe(name, OutcomeBypassed)
		logger.Warn("防重复锁存储不可用，跳过加锁直接执行",
			zap.String("key", storeKey), zap.Error(err))
		return func() {}, nil
	}

	if !ok {
		g.observe(name, OutcomeRejected)
		logger.Info("重复请求", zap.String("key", storeKey))
		return nil, ErrRepeatRequest
	}

	g.observe(name, OutcomeAcquired)
	var once sync.Once
	return func() {
		once.Do(func() { g.release(ctx, name, storeKey) })
	}, nil
}

// release 删除key，请求的context可能已经取消，这里使用独立的超时
func (g *Guard) release(ctx context.Context, name, storeKey string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := g.store.Delete(ctx, storeKey); err != nil {
		g.observe(name, OutcomeReleaseFailed)
		logger.Warn("防重复锁释放失败，等待TTL过期",
			zap.String("key", storeKey), zap.Error(err))
		return
	}
	g.observe(name, OutcomeReleased)
}

// Operation 被保护的操作
type Operation interface {
	Run(ctx context.Context) error
}

// OperationFunc 函数适配为Operation
type OperationFunc func(ctx context.Context) error

func (f OperationFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Do 加锁后执行op，执行完成后释放锁
// op返回的错误原样返回；op panic时锁同样会被释放
func (g *Guard) Do(ctx context.Context, key string, ttl time.Duration, op Operation) error {
	return g.DoRule(ctx, Rule{TTL: ttl}, key, op)
}

// DoRule 同Do，TTL和名称取自rule
func (g *Guard) DoRule(ctx context.Context, rule Rule, key string, op Operation) error {
	release, err := g.Acquire(ctx, rule, key)
	if err != nil {
		return err
	}
	defer release()
	return op.Run(ctx)
}

// Run 带返回值的Do
func Run[T any](ctx context.Context, g *Guard, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := g.Do(ctx, key, ttl, OperationFunc(func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	}))
	return result, err
}
