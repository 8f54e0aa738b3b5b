package controllers

import (
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/gin-gonic/gin"
)

// PermissionController 权限管理
type PermissionController struct {
	controllers.BaseController
	service core.PermissionService
}

func NewPermissionController(service core.PermissionService) *PermissionController {
	return &PermissionController{service: service}
}

// Create 添加权限
// @Summary 添加权限
// @Description type: 0:ALL 1:GET 2:POST 3:DELETE 4:PUT
// @Tags 权限
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body forms.PermissionForm true "权限"
// @Success 201 {object} types.Response{data=core.Permission}
// @Failure 400 {object} types.Response "参数错误"
// @Failure 409 {object} types.Response "重复提交"
// @Router /permissions/ [post]
func (controller *PermissionController) Create(c *gin.Context) {
	var form forms.PermissionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}

	permission, err := controller.service.Create(c.Request.Context(), form.ToPermission())
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, permission)
}

// Find 获取权限
// @Summary 获取权限
// @Tags 权限
// @Produce  json
// @Security BearerAuth
// @Param id path int true "权限ID"
// @Success 200 {object} types.Response{data=core.Permission}
// @Router /permissions/{id}/ [get]
func (controller *PermissionController) Find(c *gin.Context) {
	permission, ok := controller.find(c)
	if !ok {
		return
	}
	controller.HandleOK(c, permission)
}

func (controller *PermissionController) find(c *gin.Context) (*core.Permission, bool) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	permission, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	return permission, true
}

// Update 修改权限
// @Summary 修改权限
// @Tags 权限
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "权限ID"
// @Param body body forms.PermissionForm true "权限"
// @Success 200 {object} types.Response{data=core.Permission}
// @Router /permissions/{id}/ [put]
func (controller *PermissionController) Update(c *gin.Context) {
	permission, ok := controller.find(c)
	if !ok {
		return
	}

	var form forms.PermissionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}
	form.UpdatePermission(permission)

	updated, err := controller.service.Update(c.Request.Context(), permission)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// Delete 删除权限
// @Summary 删除权限
// @Tags 权限
// @Security BearerAuth
// @Param id path int true "权限ID"
// @Success 204
// @Router /permissions/{id}/ [delete]
func (controller *PermissionController) Delete(c *gin.Context) {
	permission, ok := controller.find(c)
	if !ok {
		return
	}
	if err := controller.service.Delete(c.Request.Context(), permission); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleNoContent(c)
}

// List 权限列表
// @Summary 权限列表
// @Tags 权限
// @Produce  json
// @Security BearerAuth
// @Param type query int false "类型"
// @Param search query string false "搜索名称、url"
// @Success 200 {object} types.Response{data=types.ListResponse}
// @Router /permissions/ [get]
func (controller *PermissionController) List(c *gin.Context) {
	pagination := controller.ParsePagination(c)

	filterOptions := []*filters.FilterOption{
		{QueryKey: "type", Column: "type", Op: filters.FILTER_EQ},
		{QueryKey: "url", Column: "url", Op: filters.FILTER_EQ},
		{QueryKey: "url__contains", Column: "url", Op: filters.FILTER_CONTAINS},
	}
	filterActions := controller.FilterAction(c, filterOptions, []string{"name", "url"}, []string{"id", "name", "url"}, "url")

	permissions, err := controller.service.List(c.Request.Context(), pagination.GetOffset(), pagination.PageSize, filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	count, err := controller.service.Count(c.Request.Context(), filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleList(c, pagination, count, permissions)
}
