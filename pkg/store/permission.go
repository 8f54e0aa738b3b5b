package store

import (
	"context"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// NewPermissionStore 创建PermissionStore实例
func NewPermissionStore(db *gorm.DB) core.PermissionStore {
	return &PermissionStore{db: db}
}

// PermissionStore 权限存储实现
type PermissionStore struct {
	db *gorm.DB
}

func (s *PermissionStore) FindByID(ctx context.Context, id uint) (*core.Permission, error) {
	permission := &core.Permission{}
	if err := s.db.WithContext(ctx).First(permission, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return permission, nil
}

func (s *PermissionStore) FindByIDs(ctx context.Context, ids []uint) (permissions []*core.Permission, err error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (s *PermissionStore) Create(ctx context.Context, permission *core.Permission) (*core.Permission, error) {
	if err := s.db.WithContext(ctx).Create(permission).Error; err != nil {
		return nil, translateError(err)
	}
	return permission, nil
}

func (s *PermissionStore) Update(ctx context.Context, permission *core.Permission) (*core.Permission, error) {
	if permission.ID == 0 {
		return nil, core.ErrNotFound
	}
	if _, err := s.FindByID(ctx, permission.ID); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(permission).
		Select("name", "type", "url", "description").
		Updates(permission).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, permission.ID)
}

// Delete 删除权限，同时删除角色和权限的关联
func (s *PermissionStore) Delete(ctx context.Context, permission *core.Permission) error {
	if permission.ID == 0 {
		return core.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", permission.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Permission{}, permission.ID).Error
	})
}

func (s *PermissionStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) (permissions []*core.Permission, err error) {
	query := s.db.WithContext(ctx).Model(&core.Permission{}).Offset(offset).Limit(limit)
	query = applyFilters(query, filterActions)
	if err := query.Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (s *PermissionStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	var count int64
	query := applyFilters(s.db.WithContext(ctx).Model(&core.Permission{}), filterActions)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
