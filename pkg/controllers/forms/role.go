package forms

import (
	"strings"

	"github.com/codelieche/blog/pkg/core"
)

// RoleForm 创建/更新角色
type RoleForm struct {
	Name        string `json:"name" binding:"required,notblank,max=100" example:"editor"`
	Description string `json:"description" binding:"max=500"`
}

func (form *RoleForm) ToRole() *core.Role {
	return &core.Role{
		Name:        strings.TrimSpace(form.Name),
		Description: form.Description,
	}
}

func (form *RoleForm) UpdateRole(role *core.Role) {
	role.Name = strings.TrimSpace(form.Name)
	role.Description = form.Description
}

// RolePermissionsForm 设置角色的权限，为空时清空
type RolePermissionsForm struct {
	PermissionIDs []uint `json:"permission_ids" binding:"dive,gt=0" example:"1,2"`
}
