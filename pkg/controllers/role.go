package controllers

import (
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/gin-gonic/gin"
)

// RoleController 角色管理
type RoleController struct {
	controllers.BaseController
	service core.RoleService
}

func NewRoleController(service core.RoleService) *RoleController {
	return &RoleController{service: service}
}

func (controller *RoleController) find(c *gin.Context) (*core.Role, bool) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	role, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	return role, true
}

// Create 创建角色
// @Summary 创建角色
// @Tags 角色
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body forms.RoleForm true "角色"
// @Success 201 {object} types.Response{data=core.Role}
// @Router /roles/ [post]
func (controller *RoleController) Create(c *gin.Context) {
	var form forms.RoleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	role, err := controller.service.Create(c.Request.Context(), form.ToRole())
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, role)
}

// Find 获取角色及其权限
// @Summary 获取角色
// @Tags 角色
// @Produce  json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Success 200 {object} types.Response{data=core.Role}
// @Router /roles/{id}/ [get]
func (controller *RoleController) Find(c *gin.Context) {
	role, ok := controller.find(c)
	if !ok {
		return
	}
	controller.HandleOK(c, role)
}

// Update 修改角色
// @Summary 修改角色
// @Tags 角色
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Param body body forms.RoleForm true "角色"
// @Success 200 {object} types.Response{data=core.Role}
// @Router /roles/{id}/ [put]
func (controller *RoleController) Update(c *gin.Context) {
	role, ok := controller.find(c)
	if !ok {
		return
	}
	var form forms.RoleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	form.UpdateRole(role)

	updated, err := controller.service.Update(c.Request.Context(), role)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// SetPermissions 替换角色的权限
// @Summary 设置角色权限
// @Tags 角色
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Param body body forms.RolePermissionsForm true "权限ID列表"
// @Success 200 {object} types.Response{data=core.Role}
// @Router /roles/{id}/permissions/ [put]
func (controller *RoleController) SetPermissions(c *gin.Context) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	var form forms.RolePermissionsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}

	role, err := controller.service.SetPermissions(c.Request.Context(), id, form.PermissionIDs)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, role)
}

// Delete 删除角色
// @Summary 删除角色
// @Tags 角色
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Success 204
// @Router /roles/{id}/ [delete]
func (controller *RoleController) Delete(c *gin.Context) {
	role, ok := controller.find(c)
	if !ok {
		return
	}
	if err := controller.service.Delete(c.Request.Context(), role); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleNoContent(c)
}

// List 角色列表
// @Summary 角色列表
// @Tags 角色
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} types.Response{data=types.ListResponse}
// @Router /roles/ [get]
func (controller *RoleController) List(c *gin.Context) {
	pagination := controller.ParsePagination(c)
	filterOptions := []*filters.FilterOption{
		{QueryKey: "name", Column: "name", Op: filters.FILTER_EQ},
	}
	filterActions := controller.FilterAction(c, filterOptions, []string{"name", "description"}, []string{"id", "name"}, "id")

	roles, err := controller.service.List(c.Request.Context(), pagination.GetOffset(), pagination.PageSize, filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	count, err := controller.service.Count(c.Request.Context(), filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleList(c, pagination, count, roles)
}
