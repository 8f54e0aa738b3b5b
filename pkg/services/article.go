package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 每次定时发布最多处理的文章数
const publishBatchSize = 100

// 定时发布和修改文章接口共用 article:update:{id} 这把锁
var articlePublishRule = guard.Rule{Name: "article-publish", Template: "article:update:{id}", TTL: 10 * time.Second}

// NewArticleService 创建ArticleService实例
// storage可以为nil，此时不能上传附件；g为nil时定时发布不加锁
func NewArticleService(store core.ArticleStore, categories core.CategoryStore, storage core.ObjectStorage, g *guard.Guard) core.ArticleService {
	return &ArticleService{
		store:      store,
		categories: categories,
		storage:    storage,
		guard:      g,
		now:        time.Now,
	}
}

// ArticleService 文章服务实现
type ArticleService struct {
	store      core.ArticleStore
	categories core.CategoryStore
	storage    core.ObjectStorage
	guard      *guard.Guard
	now        func() time.Time
}

func (s *ArticleService) FindByID(ctx context.Context, id uint) (*core.Article, error) {
	article, err := s.store.FindByID(ctx, id)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find article error", zap.Error(err), zap.Uint("id", id))
	}
	return article, err
}

// View 获取文章，阅读数+1失败不影响返回
func (s *ArticleService) View(ctx context.Context, id uint) (*core.Article, error) {
	article, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncreaseViewCount(ctx, id); err != nil {
		logger.Warn("increase view count error", zap.Error(err), zap.Uint("id", id))
	} else {
		article.ViewCount++
		monitoring.GlobalMetrics.ArticleViews.Inc()
	}
	return article, nil
}

// checkCategory 分类必须存在
func (s *ArticleService) checkCategory(ctx context.Context, article *core.Article) error {
	if article.CategoryID == nil || *article.CategoryID == 0 {
		article.CategoryID = nil
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *article.CategoryID); err != nil {
		if err == core.ErrNotFound {
			return fmt.Errorf("%w: 分类不存在", core.ErrBadRequest)
		}
		return err
	}
	return nil
}

func (s *ArticleService) Create(ctx context.Context, article *core.Article) (*core.Article, error) {
	if article.Title == "" || article.AuthorID == 0 {
		return nil, core.ErrBadRequest
	}
	if article.Status == "" {
		article.Status = core.ArticleStatusDraft
	}
	if !core.ValidArticleStatus(article.Status) {
		return nil, core.ErrBadRequest
	}
	if err := s.checkCategory(ctx, article); err != nil {
		return nil, err
	}
	if article.Status == core.ArticleStatusPublished {
		article.Publish(s.now())
	}

	result, err := s.store.Create(ctx, article)
	if err != nil {
		logger.Error("create article error", zap.Error(err), zap.String("title", article.Title))
		return nil, err
	}
	if result.Status == core.ArticleStatusPublished {
		monitoring.GlobalMetrics.ArticlesPublished.WithLabelValues("manual").Inc()
	}
	logger.Info("article created", zap.Uint("id", result.ID), zap.Uint("author_id", result.AuthorID))
	return result, nil
}

func (s *ArticleService) Update(ctx context.Context, article *core.Article) (*core.Article, error) {
	if article.ID == 0 || article.Title == "" {
		return nil, core.ErrBadRequest
	}
	if !core.ValidArticleStatus(article.Status) {
		return nil, core.ErrBadRequest
	}
	if err := s.checkCategory(ctx, article); err != nil {
		return nil, err
	}
	if article.Status == core.ArticleStatusPublished {
		article.Publish(s.now())
	}

	result, err := s.store.Update(ctx, article)
	if err != nil && err != core.ErrNotFound {
		logger.Error("update article error", zap.Error(err), zap.Uint("id", article.ID))
	}
	return result, err
}

// SetStatus 发布、归档或撤回为草稿
func (s *ArticleService) SetStatus(ctx context.Context, article *core.Article, status string) (*core.Article, error) {
	if !core.ValidArticleStatus(status) {
		return nil, core.ErrBadRequest
	}
	if article.Status == status {
		return article, nil
	}

	if status == core.ArticleStatusPublished {
		article.Publish(s.now())
	} else {
		article.Status = status
	}

	result, err := s.store.Update(ctx, article)
	if err != nil {
		logger.Error("set article status error", zap.Error(err), zap.Uint("id", article.ID), zap.String("status", status))
		return nil, err
	}
	if status == core.ArticleStatusPublished {
		monitoring.GlobalMetrics.ArticlesPublished.WithLabelValues("manual").Inc()
	}
	return result, nil
}

func (s *ArticleService) Delete(ctx context.Context, article *core.Article) error {
	err := s.store.Delete(ctx, article)
	if err != nil && err != core.ErrNotFound {
		logger.Error("delete article error", zap.Error(err), zap.Uint("id", article.ID))
	}
	return err
}

func (s *ArticleService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Article, error) {
	articles, err := s.store.List(ctx, offset, limit, filterActions...)
	if err != nil {
		logger.Error("list article error", zap.Error(err))
	}
	return articles, err
}

func (s *ArticleService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	count, err := s.store.Count(ctx, filterActions...)
	if err != nil {
		logger.Error("count article error", zap.Error(err))
	}
	return count, err
}

// PublishDue 发布到期的定时文章，单篇失败不影响其它文章
// 正在被修改的文章跳过，下一轮再发布
func (s *ArticleService) PublishDue(ctx context.Context, now time.Time) (int, error) {
	articles, err := s.store.ListDueForPublish(ctx, now, publishBatchSize)
	if err != nil {
		logger.Error("list due articles error", zap.Error(err))
		return 0, err
	}

	published := 0
	for _, article := range articles {
		err := s.publishLocked(ctx, article.ID, now)
		switch {
		case err == nil:
			published++
			monitoring.GlobalMetrics.ArticlesPublished.WithLabelValues("scheduler").Inc()
		case errors.Is(err, guard.ErrRepeatRequest):
			logger.Info("article is being updated, skip publish", zap.Uint("id", article.ID))
		case errors.Is(err, errNotDue):
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return published, err
		default:
			logger.Error("publish article error", zap.Error(err), zap.Uint("id", article.ID))
		}
	}
	if published > 0 {
		logger.Info("scheduled articles published", zap.Int("count", published))
	}
	return published, nil
}

var errNotDue = errors.New("article is not due for publish")

// publishLocked 持有文章的修改锁后重新读取文章再发布，避免覆盖并发的修改
func (s *ArticleService) publishLocked(ctx context.Context, id uint, now time.Time) error {
	publish := func(ctx context.Context) error {
		article, err := s.store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if article.Status != core.ArticleStatusDraft || article.PublishAt == nil || article.PublishAt.After(now) {
			return errNotDue
		}
		article.Publish(now)
		_, err = s.store.Update(ctx, article)
		return err
	}
	if s.guard == nil {
		return publish(ctx)
	}
	return s.guard.DoRule(ctx, articlePublishRule, fmt.Sprintf("article:update:%d", id), guard.OperationFunc(publish))
}

// Attach 上传附件到对象存储并保存记录
func (s *ArticleService) Attach(ctx context.Context, article *core.Article, upload *core.Upload) (*core.Attachment, error) {
	if s.storage == nil {
		return nil, core.ErrStorageDisabled
	}
	if upload == nil || upload.Reader == nil || upload.Name == "" {
		return nil, core.ErrBadRequest
	}

	objectKey := fmt.Sprintf("articles/%d/%s%s", article.ID, uuid.NewString(), path.Ext(upload.Name))
	if err := s.storage.PutObject(ctx, objectKey, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return nil, err
	}

	attachment, err := s.store.AddAttachment(ctx, &core.Attachment{
		ArticleID:   article.ID,
		Name:        upload.Name,
		ObjectKey:   objectKey,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		UploaderID:  upload.UploaderID,
	})
	if err != nil {
		logger.Error("save attachment error", zap.Error(err), zap.String("object", objectKey))
		return nil, err
	}
	monitoring.GlobalMetrics.AttachmentBytes.Add(float64(upload.Size))
	return attachment, nil
}
