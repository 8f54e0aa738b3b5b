package store

import (
	"context"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// NewArticleStore 创建ArticleStore实例
func NewArticleStore(db *gorm.DB) core.ArticleStore {
	return &ArticleStore{db: db}
}

// ArticleStore 文章存储实现
type ArticleStore struct {
	db *gorm.DB
}

// FindByID 获取文章，预加载作者、分类和附件
func (s *ArticleStore) FindByID(ctx context.Context, id uint) (*core.Article, error) {
	article := &core.Article{}
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Category").Preload("Attachments").
		First(article, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return article, nil
}

func (s *ArticleStore) Create(ctx context.Context, article *core.Article) (*core.Article, error) {
	if err := s.db.WithContext(ctx).Omit("Author", "Category", "Attachments").Create(article).Error; err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, article.ID)
}

func (s *ArticleStore) Update(ctx context.Context, article *core.Article) (*core.Article, error) {
	if article.ID == 0 {
		return nil, core.ErrNotFound
	}
	err := s.db.WithContext(ctx).Model(article).
		Select("title", "summary", "content", "status", "category_id", "tags", "publish_at", "published_at").
		Updates(article).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, article.ID)
}

func (s *ArticleStore) Delete(ctx context.Context, article *core.Article) error {
	if article.ID == 0 {
		return core.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&core.Attachment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&core.Article{}, article.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return core.ErrNotFound
		}
		return nil
	})
}

// listQuery 列表和统计共用的查询，列表不返回正文
func (s *ArticleStore) listQuery(ctx context.Context, filterActions []filters.Filter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&core.Article{})
	return applyFilters(query, filterActions)
}

func (s *ArticleStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) (articles []*core.Article, err error) {
	query := s.listQuery(ctx, filterActions).
		Omit("content").Preload("Author").Preload("Category").
		Offset(offset).Limit(limit)
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	var count int64
	if err := s.listQuery(ctx, filterActions).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *ArticleStore) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&core.Article{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (s *ArticleStore) IncreaseViewCount(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&core.Article{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (s *ArticleStore) ListDueForPublish(ctx context.Context, now time.Time, limit int) (articles []*core.Article, err error) {
	err = s.db.WithContext(ctx).
		Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", core.ArticleStatusDraft, now).
		Order("publish_at").Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) AddAttachment(ctx context.Context, attachment *core.Attachment) (*core.Attachment, error) {
	if err := s.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return nil, translateError(err)
	}
	return attachment, nil
}
