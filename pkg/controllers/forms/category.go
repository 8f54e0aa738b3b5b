package forms

import (
	"fmt"
	"regexp"

	"github.com/codelieche/blog/pkg/core"
)

var digitPrefix = regexp.MustCompile("^[0-9]")

// CategoryCreateForm 分类创建表单
type CategoryCreateForm struct {
	Code        string `json:"code" form:"code" binding:"required,notblank,max=128" example:"golang"`
	Name        string `json:"name" form:"name" binding:"max=128" example:"Go语言"`
	Description string `json:"description" form:"description" binding:"max=1000"`
}

// Validate 编码不能以数字开头，否则和ID无法区分
func (form *CategoryCreateForm) Validate() error {
	if digitPrefix.MatchString(form.Code) {
		return fmt.Errorf("分类编码不能以数字开头")
	}
	return nil
}

// ToCategory 将表单转换为分类模型
func (form *CategoryCreateForm) ToCategory() *core.Category {
	return &core.Category{
		Code:        form.Code,
		Name:        form.Name,
		Description: form.Description,
	}
}

// CategoryInfoForm 分类信息表单（用于更新）
type CategoryInfoForm struct {
	Code        string `json:"code" form:"code" binding:"max=128"`
	Name        string `json:"name" form:"name" binding:"max=128"`
	Description string `json:"description" form:"description" binding:"max=1000"`
}

// Validate 验证表单
func (form *CategoryInfoForm) Validate() error {
	if form.Code != "" && digitPrefix.MatchString(form.Code) {
		return fmt.Errorf("分类编码不能以数字开头")
	}
	return nil
}

// UpdateCategory 更新分类信息，编码为空时保持不变
func (form *CategoryInfoForm) UpdateCategory(category *core.Category) {
	if form.Code != "" {
		category.Code = form.Code
	}
	category.Name = form.Name
	category.Description = form.Description
}
