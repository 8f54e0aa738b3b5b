package core

import (
	"context"
	"strings"

	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
	"gorm.io/gorm"
)

// Category 文章分类
type Category struct {
	types.BaseModel
	Code        string `gorm:"size:128;unique;not null" json:"code"` // 分类编码，唯一且不为空
	Name        string `gorm:"size:128" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName 分类表名
func (Category) TableName() string {
	return "categories"
}

// BeforeDelete 删除时Code添加_del_后缀和时间戳
func (c *Category) BeforeDelete(tx *gorm.DB) (err error) {
	if c.ID == 0 {
		return
	}
	c.MarkDeleted()
	if c.Code != "" && !strings.Contains(c.Code, "_del_") {
		c.Code = c.Code + "_del_" + c.Strftime("20060102150405")
	}
	return tx.Model(c).UpdateColumns(map[string]interface{}{
		"code":    c.Code,
		"deleted": c.Deleted,
	}).Error
}

// CategoryStore 分类存储接口
type CategoryStore interface {
	// FindByID 根据ID获取分类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByCode 根据编码获取分类
	FindByCode(ctx context.Context, code string) (*Category, error)

	// Create 创建分类
	Create(ctx context.Context, obj *Category) (*Category, error)

	// Update 更新分类信息
	Update(ctx context.Context, obj *Category) (*Category, error)

	// Delete 删除分类
	Delete(ctx context.Context, obj *Category) error

	// List 获取分类列表
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Category, error)

	// Count 统计分类数量
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}

// CategoryService 分类服务接口
type CategoryService interface {
	FindByID(ctx context.Context, id uint) (*Category, error)
	// FindByIDOrCode 根据ID或Code获取分类
	FindByIDOrCode(ctx context.Context, idOrCode string) (*Category, error)
	Create(ctx context.Context, obj *Category) (*Category, error)
	Update(ctx context.Context, obj *Category) (*Category, error)
	Delete(ctx context.Context, obj *Category) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Category, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}
