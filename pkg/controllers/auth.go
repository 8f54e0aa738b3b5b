package controllers

import (
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/middleware"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/gin-gonic/gin"
)

// AuthController 注册、登录、注销
type AuthController struct {
	controllers.BaseController
	service core.UserService
}

func NewAuthController(service core.UserService) *AuthController {
	return &AuthController{service: service}
}

// LoginResponse 登录成功返回的token
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      *core.User `json:"user"`
}

// Register 注册
// @Summary 用户注册
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param body body forms.RegisterForm true "注册信息"
// @Success 201 {object} types.Response{data=core.User}
// @Failure 400 {object} types.Response "参数错误"
// @Failure 409 {object} types.Response "用户名已存在或重复提交"
// @Router /auth/register [post]
func (controller *AuthController) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}

	user, err := controller.service.Register(c.Request.Context(), form.ToUser(), form.Password)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, user)
}

// Login 登录
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param body body forms.LoginForm true "用户名和密码"
// @Success 200 {object} types.Response{data=LoginResponse}
// @Failure 401 {object} types.Response "用户名或密码错误"
// @Failure 409 {object} types.Response "重复提交"
// @Router /auth/login [post]
func (controller *AuthController) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}

	user, token, expiresAt, err := controller.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format("2006-01-02 15:04:05"),
		User:      user,
	})
}

// Logout 注销当前token
// @Summary 注销
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} types.Response
// @Failure 401 {object} types.Response "未登录"
// @Router /auth/logout [post]
func (controller *AuthController) Logout(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	if err := controller.service.Logout(c.Request.Context(), user); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, nil)
}

// Me 当前登录用户
// @Summary 当前用户信息
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} types.Response{data=core.User}
// @Router /auth/me [get]
func (controller *AuthController) Me(c *gin.Context) {
	current, _ := middleware.GetCurrentUser(c)
	user, err := controller.service.FindByID(c.Request.Context(), current.UserID)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, user)
}

// ChangePassword 修改自己的密码
// @Summary 修改密码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body forms.ChangePasswordForm true "旧密码和新密码"
// @Success 200 {object} types.Response
// @Router /auth/password [put]
func (controller *AuthController) ChangePassword(c *gin.Context) {
	var form forms.ChangePasswordForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}

	current, _ := middleware.GetCurrentUser(c)
	if err := controller.service.ChangePassword(c.Request.Context(), current.UserID, form.OldPassword, form.NewPassword); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, nil)
}
