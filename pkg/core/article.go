package core

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
)

// 文章状态
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// ValidArticleStatus 是否是合法的文章状态
func ValidArticleStatus(status string) bool {
	switch status {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	}
	return false
}

// Article 文章
type Article struct {
	types.BaseModel
	Title       string        `gorm:"size:255;not null" json:"title"`
	Summary     string        `gorm:"size:1000" json:"summary"`
	Content     string        `gorm:"type:text" json:"content,omitempty"`
	Status      string        `gorm:"size:20;index;default:draft" json:"status"`
	AuthorID    uint          `gorm:"index;not null" json:"author_id"`
	Author      *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID  *uint         `gorm:"index" json:"category_id"`
	Category    *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags        string        `gorm:"size:512" json:"tags"` // 逗号分隔
	PublishAt   *time.Time    `gorm:"index" json:"publish_at"`   // 定时发布时间
	PublishedAt *time.Time    `json:"published_at"`
	ViewCount   int64         `gorm:"default:0" json:"view_count"`
	Attachments []*Attachment `gorm:"foreignKey:ArticleID" json:"attachments,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

// TagList 标签列表
func (a *Article) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(a.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Publish 设置为已发布
func (a *Article) Publish(now time.Time) {
	a.Status = ArticleStatusPublished
	if a.PublishedAt == nil {
		a.PublishedAt = &now
	}
}

// EditableBy 作者本人或管理员可以修改
func (a *Article) EditableBy(user *AuthenticatedUser) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || user.UserID == a.AuthorID
}

// Attachment 文章附件，文件存放在对象存储中
type Attachment struct {
	types.BaseModel
	ArticleID   uint   `gorm:"index;not null" json:"article_id"`
	Name        string `gorm:"size:255" json:"name"`
	ObjectKey   string `gorm:"size:512" json:"object_key"`
	ContentType string `gorm:"size:128" json:"content_type"`
	Size        int64  `json:"size"`
	UploaderID  uint   `json:"uploader_id"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// ArticleStore 文章存储接口
type ArticleStore interface {
	FindByID(ctx context.Context, id uint) (*Article, error)
	Create(ctx context.Context, obj *Article) (*Article, error)
	Update(ctx context.Context, obj *Article) (*Article, error)
	Delete(ctx context.Context, obj *Article) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Article, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)

	// CountByCategory 统计分类下的文章数
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)

	// IncreaseViewCount 阅读数+1
	IncreaseViewCount(ctx context.Context, id uint) error

	// ListDueForPublish 获取到了定时发布时间的草稿
	ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]*Article, error)

	// AddAttachment 保存附件记录
	AddAttachment(ctx context.Context, obj *Attachment) (*Attachment, error)
}

// ArticleService 文章服务接口
type ArticleService interface {
	FindByID(ctx context.Context, id uint) (*Article, error)
	// View 获取文章并增加阅读数
	View(ctx context.Context, id uint) (*Article, error)
	Create(ctx context.Context, obj *Article) (*Article, error)
	Update(ctx context.Context, obj *Article) (*Article, error)
	// SetStatus 修改文章状态
	SetStatus(ctx context.Context, obj *Article, status string) (*Article, error)
	Delete(ctx context.Context, obj *Article) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Article, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)

	// PublishDue 发布所有到期的定时文章，返回发布的数量
	PublishDue(ctx context.Context, now time.Time) (int, error)

	// Attach 上传附件
	Attach(ctx context.Context, obj *Article, upload *Upload) (*Attachment, error)
}

// Upload 待上传的文件
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
	UploaderID  uint
}

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
