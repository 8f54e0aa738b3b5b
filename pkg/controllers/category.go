package controllers

import (
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/gin-gonic/gin"
)

// CategoryController 分类控制器
type CategoryController struct {
	controllers.BaseController
	service core.CategoryService
}

// NewCategoryController 创建CategoryController实例
func NewCategoryController(service core.CategoryService) *CategoryController {
	return &CategoryController{
		service: service,
	}
}

// Create 创建分类
// @Summary 创建分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body forms.CategoryCreateForm true "分类"
// @Success 201 {object} types.Response{data=core.Category}
// @Failure 409 {object} types.Response "编码已存在"
// @Router /categories/ [post]
func (controller *CategoryController) Create(c *gin.Context) {
	var form forms.CategoryCreateForm
	if err := c.ShouldBind(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}

	category, err := controller.service.Create(c.Request.Context(), form.ToCategory())
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, category)
}

// Find 获取分类信息，支持ID或编码
// @Summary 获取分类
// @Tags 分类
// @Produce  json
// @Param id path string true "分类ID或编码"
// @Success 200 {object} types.Response{data=core.Category}
// @Router /categories/{id}/ [get]
func (controller *CategoryController) Find(c *gin.Context) {
	category, err := controller.service.FindByIDOrCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, category)
}

// Update 更新分类信息
// @Summary 修改分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "分类ID或编码"
// @Param body body forms.CategoryInfoForm true "分类"
// @Success 200 {object} types.Response{data=core.Category}
// @Router /categories/{id}/ [put]
func (controller *CategoryController) Update(c *gin.Context) {
	category, err := controller.service.FindByIDOrCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.HandleError(c, err)
		return
	}

	var form forms.CategoryInfoForm
	if err := c.ShouldBind(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}
	form.UpdateCategory(category)

	updated, err := controller.service.Update(c.Request.Context(), category)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// Delete 删除分类
// @Summary 删除分类
// @Tags 分类
// @Security BearerAuth
// @Param id path string true "分类ID或编码"
// @Success 204
// @Router /categories/{id}/ [delete]
func (controller *CategoryController) Delete(c *gin.Context) {
	category, err := controller.service.FindByIDOrCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	if err := controller.service.Delete(c.Request.Context(), category); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleNoContent(c)
}

// List 获取分类列表
// @Summary 分类列表
// @Tags 分类
// @Produce  json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param search query string false "搜索编码、名称、描述"
// @Param ordering query string false "排序，例如 -created_at"
// @Success 200 {object} types.Response{data=types.ListResponse}
// @Router /categories/ [get]
func (controller *CategoryController) List(c *gin.Context) {
	pagination := controller.ParsePagination(c)

	filterOptions := []*filters.FilterOption{
		{QueryKey: "id", Column: "id", Op: filters.FILTER_EQ},
		{QueryKey: "code", Column: "code", Op: filters.FILTER_EQ},
		{QueryKey: "code__contains", Column: "code", Op: filters.FILTER_CONTAINS},
		{QueryKey: "name", Column: "name", Op: filters.FILTER_EQ},
		{QueryKey: "name__contains", Column: "name", Op: filters.FILTER_CONTAINS},
	}
	searchFields := []string{"code", "name", "description"}
	orderingFields := []string{"code", "name", "created_at", "updated_at"}

	filterActions := controller.FilterAction(c, filterOptions, searchFields, orderingFields, "code")

	categories, err := controller.service.List(c.Request.Context(), pagination.GetOffset(), pagination.PageSize, filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	count, err := controller.service.Count(c.Request.Context(), filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleList(c, pagination, count, categories)
}
