package app

import (
	"context"
	"errors"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/codelieche/blog/pkg/services"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	publishLockKey = "scheduler:publish"
	publishLockTTL = 5 * time.Minute
)

// Scheduler 后台定时任务调度器
//
// 多实例部署时每个任务都通过防重复锁保护，同一时刻只有一个实例在执行
type Scheduler struct {
	cron      *cron.Cron
	guard     *guard.Guard
	articles  core.ArticleService
	threshold time.Duration
	now       func() time.Time
}

// NewScheduler 创建定时任务调度器
func NewScheduler(g *guard.Guard, articles core.ArticleService, threshold time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		guard:     g,
		articles:  articles,
		threshold: threshold,
		now:       time.Now,
	}
}

// Start 注册任务并启动调度器
func (s *Scheduler) Start(publishSpec string) error {
	// 定时发布文章
	if _, err := s.cron.AddFunc(publishSpec, func() {
		s.publishDue(context.Background())
	}); err != nil {
		logger.Error("注册定时发布任务失败", zap.String("spec", publishSpec), zap.Error(err))
		return err
	}

	s.cron.Start()
	logger.Info("定时任务调度器已启动", zap.String("publish_spec", publishSpec))
	return nil
}

// Stop 停止调度器，等待正在执行的任务结束
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		logger.Info("定时任务调度器已停止")
	case <-ctx.Done():
		logger.Warn("等待定时任务结束超时")
	}
}

// publishDue 发布到期的定时文章
// 返回执行结果: success, skipped, error
func (s *Scheduler) publishDue(ctx context.Context) string {
	var count int
	err := s.guard.Do(ctx, publishLockKey, publishLockTTL, guard.OperationFunc(func(ctx context.Context) error {
		return services.Timed("scheduler.publish", s.threshold, func() error {
			var err error
			count, err = s.articles.PublishDue(ctx, s.now())
			return err
		})
	}))

	result := "success"
	switch {
	case errors.Is(err, guard.ErrRepeatRequest):
		result = "skipped"
		logger.Info("定时发布任务正在其他实例执行，跳过", zap.String("lock_key", publishLockKey))
	case err != nil:
		result = "error"
		logger.Error("定时发布文章失败", zap.Error(err))
	case count > 0:
		logger.Info("定时发布文章完成", zap.Int("count", count))
	}
	monitoring.GlobalMetrics.RecordSchedulerRun("publish", result)
	return result
}
