package store

import (
	"context"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// NewRoleStore 创建RoleStore实例
func NewRoleStore(db *gorm.DB) core.RoleStore {
	return &RoleStore{db: db}
}

// RoleStore 角色存储实现
type RoleStore struct {
	db *gorm.DB
}

func (s *RoleStore) FindByID(ctx context.Context, id uint) (*core.Role, error) {
	role := &core.Role{}
	if err := s.db.WithContext(ctx).Preload("Permissions").First(role, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return role, nil
}

func (s *RoleStore) FindByName(ctx context.Context, name string) (*core.Role, error) {
	role := &core.Role{}
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(role).Error; err != nil {
		return nil, translateError(err)
	}
	return role, nil
}

func (s *RoleStore) Create(ctx context.Context, role *core.Role) (*core.Role, error) {
	if _, err := s.FindByName(ctx, role.Name); err == nil {
		return nil, core.ErrConflict
	} else if err != core.ErrNotFound {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, translateError(err)
	}
	return role, nil
}

func (s *RoleStore) Update(ctx context.Context, role *core.Role) (*core.Role, error) {
	if role.ID == 0 {
		return nil, core.ErrNotFound
	}
	existing, err := s.FindByID(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	if role.Name != "" && role.Name != existing.Name {
		if _, err := s.FindByName(ctx, role.Name); err == nil {
			return nil, core.ErrConflict
		} else if err != core.ErrNotFound {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Model(role).Omit("Permissions").
		Select("name", "description").Updates(role).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, role.ID)
}

// ReplacePermissions 替换角色的权限
func (s *RoleStore) ReplacePermissions(ctx context.Context, role *core.Role, permissions []*core.Permission) error {
	return s.db.WithContext(ctx).Model(role).Association("Permissions").Replace(permissions)
}

// Delete 删除角色，清空权限关联，用户的role_id置空
func (s *RoleStore) Delete(ctx context.Context, role *core.Role) error {
	if role.ID == 0 {
		return core.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Permissions").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&core.User{}).Where("role_id = ?", role.ID).
			UpdateColumn("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Role{}, role.ID).Error
	})
}

func (s *RoleStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) (roles []*core.Role, err error) {
	query := s.db.WithContext(ctx).Model(&core.Role{}).Preload("Permissions").Offset(offset).Limit(limit)
	query = applyFilters(query, filterActions)
	if err := query.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	var count int64
	query := applyFilters(s.db.WithContext(ctx).Model(&core.Role{}), filterActions)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
