package services

import (
	"context"
	"strconv"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
)

// NewCategoryService 创建CategoryService实例
// articles用于删除前检查分类下是否还有文章
func NewCategoryService(store core.CategoryStore, articles core.ArticleStore) core.CategoryService {
	return &CategoryService{
		store:    store,
		articles: articles,
	}
}

// CategoryService 分类服务实现
type CategoryService struct {
	store    core.CategoryStore
	articles core.ArticleStore
}

// FindByID 根据ID获取分类
func (s *CategoryService) FindByID(ctx context.Context, id uint) (*core.Category, error) {
	category, err := s.store.FindByID(ctx, id)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find category by id error", zap.Error(err), zap.Uint("id", id))
	}
	return category, err
}

// FindByIDOrCode 先按ID查找，找不到再按Code查找
func (s *CategoryService) FindByIDOrCode(ctx context.Context, idOrCode string) (*core.Category, error) {
	if id, err := strconv.ParseUint(idOrCode, 10, 32); err == nil {
		category, err := s.FindByID(ctx, uint(id))
		if err == nil {
			return category, nil
		} else if err != core.ErrNotFound {
			return nil, err
		}
	}

	category, err := s.store.FindByCode(ctx, idOrCode)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find category by code error", zap.Error(err), zap.String("code", idOrCode))
	}
	return category, err
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, category *core.Category) (*core.Category, error) {
	if category.Code == "" {
		return nil, core.ErrBadRequest
	}

	result, err := s.store.Create(ctx, category)
	if err != nil {
		if err == core.ErrConflict {
			logger.Info("category already exists", zap.String("code", category.Code))
		} else {
			logger.Error("create category error", zap.Error(err))
		}
	}
	return result, err
}

// Update 更新分类信息
func (s *CategoryService) Update(ctx context.Context, category *core.Category) (*core.Category, error) {
	if category.ID <= 0 {
		return nil, core.ErrBadRequest
	}

	result, err := s.store.Update(ctx, category)
	if err != nil && err != core.ErrNotFound && err != core.ErrConflict {
		logger.Error("update category error", zap.Error(err), zap.Uint("id", category.ID))
	}
	return result, err
}

// Delete 删除分类，分类下还有文章时返回ErrConflict
func (s *CategoryService) Delete(ctx context.Context, category *core.Category) error {
	count, err := s.articles.CountByCategory(ctx, category.ID)
	if err != nil {
		logger.Error("count category articles error", zap.Error(err), zap.Uint("id", category.ID))
		return err
	}
	if count > 0 {
		logger.Info("分类下还有文章，不能删除",
			zap.String("code", category.Code), zap.Int64("articles", count))
		return core.ErrConflict
	}

	err = s.store.Delete(ctx, category)
	if err != nil && err != core.ErrNotFound {
		logger.Error("delete category error", zap.Error(err), zap.Uint("id", category.ID))
	}
	return err
}

// List 获取分类列表
func (s *CategoryService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Category, error) {
	categories, err := s.store.List(ctx, offset, limit, filterActions...)
	if err != nil {
		logger.Error("list category error", zap.Error(err))
	}
	return categories, err
}

// Count 统计分类数量
func (s *CategoryService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	count, err := s.store.Count(ctx, filterActions...)
	if err != nil {
		logger.Error("count category error", zap.Error(err))
	}
	return count, err
}
