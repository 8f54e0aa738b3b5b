package core

import (
	"context"
	"net/http"
	"strings"

	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
)

// PermissionType 权限类型 0:ALL 1:GET 2:POST 3:DELETE 4:PUT
type PermissionType uint8

const (
	PermissionAll PermissionType = iota
	PermissionGet
	PermissionPost
	PermissionDelete
	PermissionPut
)

var permissionTypeMethods = map[PermissionType]string{
	PermissionAll:    "ALL",
	PermissionGet:    http.MethodGet,
	PermissionPost:   http.MethodPost,
	PermissionDelete: http.MethodDelete,
	PermissionPut:    http.MethodPut,
}

// Valid 是否是合法的权限类型
func (t PermissionType) Valid() bool {
	_, ok := permissionTypeMethods[t]
	return ok
}

func (t PermissionType) String() string {
	if m, ok := permissionTypeMethods[t]; ok {
		return m
	}
	return "UNKNOWN"
}

// MatchMethod 请求方法是否匹配，ALL匹配所有方法，PATCH按PUT处理
func (t PermissionType) MatchMethod(method string) bool {
	if t == PermissionAll {
		return true
	}
	method = strings.ToUpper(method)
	if method == http.MethodPatch {
		method = http.MethodPut
	}
	return permissionTypeMethods[t] == method
}

// PermissionTypeValues 所有合法的权限类型
func PermissionTypeValues() []PermissionType {
	return []PermissionType{PermissionAll, PermissionGet, PermissionPost, PermissionDelete, PermissionPut}
}

// Permission 权限
type Permission struct {
	types.BaseModel
	Name        string         `gorm:"size:100;not null" json:"name"`
	Type        PermissionType `gorm:"type:smallint;default:0" json:"type"`
	URL         string         `gorm:"column:url;size:255;not null" json:"url"`
	Description string         `gorm:"size:1000" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

// Match 权限是否允许访问该请求，url按路径前缀匹配
func (p *Permission) Match(method, path string) bool {
	if !p.Type.MatchMethod(method) || p.URL == "" {
		return false
	}
	if !strings.HasPrefix(path, p.URL) {
		return false
	}
	return len(path) == len(p.URL) || strings.HasSuffix(p.URL, "/") || path[len(p.URL)] == '/'
}

// PermissionStore 权限存储接口
type PermissionStore interface {
	FindByID(ctx context.Context, id uint) (*Permission, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
	Create(ctx context.Context, obj *Permission) (*Permission, error)
	Update(ctx context.Context, obj *Permission) (*Permission, error)
	Delete(ctx context.Context, obj *Permission) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Permission, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}

// PermissionService 权限服务接口
type PermissionService interface {
	FindByID(ctx context.Context, id uint) (*Permission, error)
	Create(ctx context.Context, obj *Permission) (*Permission, error)
	Update(ctx context.Context, obj *Permission) (*Permission, error)
	Delete(ctx context.Context, obj *Permission) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*Permission, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)

	// Check 检查用户是否可以访问该请求，管理员总是允许
	Check(ctx context.Context, user *AuthenticatedUser, method, path string) (bool, error)
}
