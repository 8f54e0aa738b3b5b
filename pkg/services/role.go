package services

import (
	"context"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
)

// NewRoleService 创建RoleService实例
func NewRoleService(store core.RoleStore, permissions core.PermissionStore) core.RoleService {
	return &RoleService{store: store, permissions: permissions}
}

// RoleService 角色服务实现
type RoleService struct {
	store       core.RoleStore
	permissions core.PermissionStore
}

func (s *RoleService) FindByID(ctx context.Context, id uint) (*core.Role, error) {
	role, err := s.store.FindByID(ctx, id)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find role error", zap.Error(err), zap.Uint("id", id))
	}
	return role, err
}

func (s *RoleService) Create(ctx context.Context, role *core.Role) (*core.Role, error) {
	if role.Name == "" {
		return nil, core.ErrBadRequest
	}
	result, err := s.store.Create(ctx, role)
	if err != nil && err != core.ErrConflict {
		logger.Error("create role error", zap.Error(err), zap.String("name", role.Name))
	}
	return result, err
}

func (s *RoleService) Update(ctx context.Context, role *core.Role) (*core.Role, error) {
	if role.ID == 0 {
		return nil, core.ErrBadRequest
	}
	result, err := s.store.Update(ctx, role)
	if err != nil && err != core.ErrNotFound && err != core.ErrConflict {
		logger.Error("update role error", zap.Error(err), zap.Uint("id", role.ID))
	}
	return result, err
}

// SetPermissions 替换角色的权限，任何一个权限不存在都返回ErrBadRequest
func (s *RoleService) SetPermissions(ctx context.Context, id uint, permissionIDs []uint) (*core.Role, error) {
	role, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unique := make(map[uint]struct{}, len(permissionIDs))
	ids := make([]uint, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		if _, ok := unique[pid]; !ok {
			unique[pid] = struct{}{}
			ids = append(ids, pid)
		}
	}

	permissions, err := s.permissions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(permissions) != len(ids) {
		return nil, core.ErrBadRequest
	}

	if err := s.store.ReplacePermissions(ctx, role, permissions); err != nil {
		logger.Error("replace role permissions error", zap.Error(err), zap.Uint("id", id))
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

func (s *RoleService) Delete(ctx context.Context, role *core.Role) error {
	err := s.store.Delete(ctx, role)
	if err != nil && err != core.ErrNotFound {
		logger.Error("delete role error", zap.Error(err), zap.Uint("id", role.ID))
	}
	return err
}

func (s *RoleService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Role, error) {
	return s.store.List(ctx, offset, limit, filterActions...)
}

func (s *RoleService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return s.store.Count(ctx, filterActions...)
}
