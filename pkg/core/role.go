package core

import (
	"context"

	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
)

// Role 角色
type Role struct {
	types.BaseModel
	Name        string        `gorm:"size:64;unique;not null" json:"name"`
	Description string        `gorm:"size:512" json:"description"`
	Permissions []*Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Allow 角色的权限中是否有匹配该请求的
func (r *Role) Allow(method, path string) bool {
	for _, p := range r.Permissions {
		if p.Match(method, path) {
			return true
		}
	}
	return false
}

// RoleStore 角色存储接口
type RoleStore interface {
	// FindByID 获取角色，会预加载权限
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, obj *Role) (*Role, error)
	Update(ctx context.Context, obj *Role) (*Role, error)
	// ReplacePermissions 替换角色的权限列表
	ReplacePermissions(ctx context.Context, obj *Role, permissions []*Permission) error
	Delete(ctx context.Context, obj *Role) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Role, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}

// RoleService 角色服务接口
type RoleService interface {
	FindByID(ctx context.Context, id uint) (*Role, error)
	Create(ctx context.Context, obj *Role) (*Role, error)
	Update(ctx context.Context, obj *Role) (*Role, error)
	SetPermissions(ctx context.Context, id uint, permissionIDs []uint) (*Role, error)
	Delete(ctx context.Context, obj *Role) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Role, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}
