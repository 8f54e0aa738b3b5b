package store

import (
	"context"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB 只生成SQL不执行，不需要真实的数据库
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:root@tcp(127.0.0.1:3306)/blog?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestApplyFilters_SQL(t *testing.T) {
	db := newDryRunDB(t)

	actions := []filters.Filter{
		filters.NewFilterAction([]*filters.FilterOption{
			{Column: "status", Value: "published", Op: filters.FILTER_EQ},
		}),
		nil,
		filters.NewSearchAction([]string{"title", "summary"}, "redis"),
		filters.NewOrdering([]string{"id", "created_at"}, "-created_at"),
	}

	var articles []*core.Article
	stmt := applyFilters(db.Model(&core.Article{}), actions).Find(&articles).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "`status` = ?")
	assert.Contains(t, sql, "`title` LIKE ? OR `summary` LIKE ?")
	assert.Contains(t, sql, "ORDER BY `created_at` DESC")
	assert.Contains(t, stmt.Vars, "%redis%")
}

func TestArticleStore_ListDueForPublishSQL(t *testing.T) {
	db := newDryRunDB(t)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	stmt := db.Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", core.ArticleStatusDraft, now).
		Order("publish_at").Limit(10).Find(&[]*core.Article{}).Statement
	assert.Contains(t, stmt.SQL.String(), "publish_at <= ?")
	assert.Equal(t, []interface{}{core.ArticleStatusDraft, now}, stmt.Vars[:2])

	// 通过store调用同样不会访问数据库
	articles, err := NewArticleStore(db).ListDueForPublish(context.Background(), now, 10)
	assert.NoError(t, err)
	assert.Empty(t, articles)
}

func TestTranslateError(t *testing.T) {
	assert.Equal(t, core.ErrNotFound, translateError(gorm.ErrRecordNotFound))
	assert.Equal(t, core.ErrConflict, translateError(gorm.ErrDuplicatedKey))
	assert.Equal(t, gorm.ErrInvalidData, translateError(gorm.ErrInvalidData))
}
