package controllers

import (
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/gin-gonic/gin"
)

// UserController 用户管理
type UserController struct {
	controllers.BaseController
	service core.UserService
}

func NewUserController(service core.UserService) *UserController {
	return &UserController{service: service}
}

// Find 获取用户
// @Summary 获取用户
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} types.Response{data=core.User}
// @Failure 404 {object} types.Response
// @Router /users/{id}/ [get]
func (controller *UserController) Find(c *gin.Context) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	user, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, user)
}

// Update 管理员修改用户
// @Summary 修改用户
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param body body forms.UserInfoForm true "用户信息"
// @Success 200 {object} types.Response{data=core.User}
// @Router /users/{id}/ [put]
func (controller *UserController) Update(c *gin.Context) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	user, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return
	}

	var form forms.UserInfoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	form.UpdateUser(user)

	updated, err := controller.service.Update(c.Request.Context(), user)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// Delete 删除用户
// @Summary 删除用户
// @Tags 用户
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 204
// @Router /users/{id}/ [delete]
func (controller *UserController) Delete(c *gin.Context) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	user, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	if err := controller.service.Delete(c.Request.Context(), user); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleNoContent(c)
}

// List 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param search query string false "搜索用户名、昵称、邮箱"
// @Success 200 {object} types.Response{data=types.ListResponse}
// @Router /users/ [get]
func (controller *UserController) List(c *gin.Context) {
	pagination := controller.ParsePagination(c)

	filterOptions := []*filters.FilterOption{
		{QueryKey: "username", Column: "username", Op: filters.FILTER_EQ},
		{QueryKey: "is_active", Column: "is_active", Op: filters.FILTER_EQ},
		{QueryKey: "is_admin", Column: "is_admin", Op: filters.FILTER_EQ},
		{QueryKey: "role_id", Column: "role_id", Op: filters.FILTER_EQ},
	}
	searchFields := []string{"username", "nickname", "email"}
	orderingFields := []string{"id", "username", "created_at", "last_login"}

	filterActions := controller.FilterAction(c, filterOptions, searchFields, orderingFields, "-id")

	users, err := controller.service.List(c.Request.Context(), pagination.GetOffset(), pagination.PageSize, filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	count, err := controller.service.Count(c.Request.Context(), filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleList(c, pagination, count, users)
}
