package services

import (
	"context"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
)

// NewPermissionService 创建PermissionService实例
func NewPermissionService(store core.PermissionStore, roles core.RoleStore) core.PermissionService {
	return &PermissionService{store: store, roles: roles}
}

// PermissionService 权限服务实现
type PermissionService struct {
	store core.PermissionStore
	roles core.RoleStore
}

func (s *PermissionService) FindByID(ctx context.Context, id uint) (*core.Permission, error) {
	permission, err := s.store.FindByID(ctx, id)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find permission error", zap.Error(err), zap.Uint("id", id))
	}
	return permission, err
}

func (s *PermissionService) Create(ctx context.Context, permission *core.Permission) (*core.Permission, error) {
	if !permission.Type.Valid() {
		return nil, core.ErrBadRequest
	}
	result, err := s.store.Create(ctx, permission)
	if err != nil {
		logger.Error("create permission error", zap.Error(err), zap.String("name", permission.Name))
	}
	return result, err
}

func (s *PermissionService) Update(ctx context.Context, permission *core.Permission) (*core.Permission, error) {
	if permission.ID == 0 || !permission.Type.Valid() {
		return nil, core.ErrBadRequest
	}
	result, err := s.store.Update(ctx, permission)
	if err != nil && err != core.ErrNotFound {
		logger.Error("update permission error", zap.Error(err), zap.Uint("id", permission.ID))
	}
	return result, err
}

func (s *PermissionService) Delete(ctx context.Context, permission *core.Permission) error {
	err := s.store.Delete(ctx, permission)
	if err != nil && err != core.ErrNotFound {
		logger.Error("delete permission error", zap.Error(err), zap.Uint("id", permission.ID))
	}
	return err
}

func (s *PermissionService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Permission, error) {
	return s.store.List(ctx, offset, limit, filterActions...)
}

func (s *PermissionService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return s.store.Count(ctx, filterActions...)
}

// Check 管理员允许所有请求；其它用户需要角色中有匹配的权限
func (s *PermissionService) Check(ctx context.Context, user *core.AuthenticatedUser, method, path string) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsAdmin {
		return true, nil
	}
	if user.RoleID == 0 {
		return false, nil
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if err == core.ErrNotFound {
			return false, nil
		}
		logger.Error("find role error", zap.Error(err), zap.Uint("role_id", user.RoleID))
		return false, err
	}
	return role.Allow(method, path), nil
}
