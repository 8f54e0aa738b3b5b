package forms

import (
	"fmt"
	"strings"

	"github.com/codelieche/blog/pkg/core"
)

// PermissionForm 创建/更新权限
type PermissionForm struct {
	Name        string               `json:"name" binding:"required,notblank,max=100" example:"查看文章"`
	Type        *core.PermissionType `json:"type" binding:"required,legal_enum" example:"1"` // 0:ALL 1:GET 2:POST 3:DELETE 4:PUT
	URL         string               `json:"url" binding:"required,notblank,max=255" example:"/api/v1/articles"`
	Description string               `json:"description" binding:"max=1000"`
}

// Validate url必须以/开头
func (form *PermissionForm) Validate() error {
	if !strings.HasPrefix(form.URL, "/") {
		return fmt.Errorf("url必须以/开头")
	}
	return nil
}

func (form *PermissionForm) ToPermission() *core.Permission {
	return &core.Permission{
		Name:        strings.TrimSpace(form.Name),
		Type:        *form.Type,
		URL:         strings.TrimSpace(form.URL),
		Description: form.Description,
	}
}

// UpdatePermission 更新权限
func (form *PermissionForm) UpdatePermission(permission *core.Permission) {
	p := form.ToPermission()
	permission.Name = p.Name
	permission.Type = p.Type
	permission.URL = p.URL
	permission.Description = p.Description
}
