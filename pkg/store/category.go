package store

import (
	"context"
	"errors"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// NewCategoryStore 创建CategoryStore实例
func NewCategoryStore(db *gorm.DB) core.CategoryStore {
	return &CategoryStore{
		db: db,
	}
}

// CategoryStore 分类存储实现
type CategoryStore struct {
	db *gorm.DB
}

// FindByID 根据ID获取分类
func (s *CategoryStore) FindByID(ctx context.Context, id uint) (*core.Category, error) {
	var category = &core.Category{}
	if err := s.db.WithContext(ctx).First(category, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return category, nil
}

// FindByCode 根据编码获取分类
func (s *CategoryStore) FindByCode(ctx context.Context, code string) (*core.Category, error) {
	var category = &core.Category{}
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(category).Error; err != nil {
		return nil, translateError(err)
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryStore) Create(ctx context.Context, category *core.Category) (*core.Category, error) {
	// 检查是否已存在相同编码的分类
	if _, err := s.FindByCode(ctx, category.Code); err == nil {
		return nil, core.ErrConflict
	} else if err != core.ErrNotFound {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, translateError(err)
	}
	return category, nil
}

// Update 更新分类信息
func (s *CategoryStore) Update(ctx context.Context, category *core.Category) (*core.Category, error) {
	if category.ID <= 0 {
		return nil, errors.New("传入的ID无效")
	}

	existingCategory, err := s.FindByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	// 如果编码有变化，检查新编码是否已存在
	if category.Code != "" && category.Code != existingCategory.Code {
		if _, err := s.FindByCode(ctx, category.Code); err == nil {
			return nil, core.ErrConflict
		} else if err != core.ErrNotFound {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(category).Updates(category).Error; err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, category.ID)
}

// Delete 删除分类，会触发BeforeDelete钩子
func (s *CategoryStore) Delete(ctx context.Context, category *core.Category) error {
	if category.ID <= 0 {
		return core.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := &core.Category{}
		if err := tx.First(existing, "id = ?", category.ID).Error; err != nil {
			return translateError(err)
		}
		return tx.Delete(existing).Error
	})
}

// List 获取分类列表
func (s *CategoryStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) (categories []*core.Category, err error) {
	query := s.db.WithContext(ctx).Model(&core.Category{}).Offset(offset).Limit(limit)
	query = applyFilters(query, filterActions)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count 统计分类数量
func (s *CategoryStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	var count int64
	query := applyFilters(s.db.WithContext(ctx).Model(&core.Category{}), filterActions)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
