package store

import (
	"errors"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// applyFilters 应用过滤条件
func applyFilters(query *gorm.DB, filterActions []filters.Filter) *gorm.DB {
	for _, action := range filterActions {
		if action == nil {
			continue
		}
		query = action.Filter(query)
	}
	return query
}

// translateError gorm的未找到错误转换为core.ErrNotFound
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return core.ErrConflict
	}
	return err
}
