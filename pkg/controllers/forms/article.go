package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/codelieche/blog/pkg/core"
)

// ArticleForm 创建/更新文章
type ArticleForm struct {
	Title      string     `json:"title" binding:"required,notblank,max=255" example:"Go并发模式"`
	Summary    string     `json:"summary" binding:"max=1000"`
	Content    string     `json:"content"`
	Status     string     `json:"status" binding:"omitempty,oneof=draft published archived" example:"draft"`
	CategoryID *uint      `json:"category_id" example:"1"`
	Tags       []string   `json:"tags" binding:"max=20,dive,notblank,max=32" example:"go,并发"`
	PublishAt  *time.Time `json:"publish_at"` // 定时发布时间，只对草稿有效
}

// Validate 定时发布时间只能用于草稿
func (form *ArticleForm) Validate() error {
	if form.PublishAt != nil && form.Status != "" && form.Status != core.ArticleStatusDraft {
		return fmt.Errorf("只有草稿可以设置定时发布时间")
	}
	return nil
}

func (form *ArticleForm) tags() string {
	tags := make([]string, 0, len(form.Tags))
	for _, tag := range form.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}
	return strings.Join(tags, ",")
}

// ToArticle 转换为文章，作者由调用方设置
func (form *ArticleForm) ToArticle() *core.Article {
	article := &core.Article{}
	form.UpdateArticle(article)
	return article
}

// UpdateArticle 更新文章内容，status为空时保持原状态
func (form *ArticleForm) UpdateArticle(article *core.Article) {
	article.Title = strings.TrimSpace(form.Title)
	article.Summary = form.Summary
	article.Content = form.Content
	if form.Status != "" {
		article.Status = form.Status
	}
	article.CategoryID = form.CategoryID
	article.Tags = form.tags()
	article.PublishAt = form.PublishAt
}

// ArticleStatusForm 修改文章状态
type ArticleStatusForm struct {
	Action string `json:"action" binding:"required,oneof=publish archive draft" example:"publish"`
}

// Status 动作对应的状态
func (form *ArticleStatusForm) Status() string {
	switch form.Action {
	case "publish":
		return core.ArticleStatusPublished
	case "archive":
		return core.ArticleStatusArchived
	}
	return core.ArticleStatusDraft
}
