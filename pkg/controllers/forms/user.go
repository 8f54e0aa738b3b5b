package forms

import (
	"fmt"
	"regexp"

	"github.com/codelieche/blog/pkg/core"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// RegisterForm 注册
type RegisterForm struct {
	Username string `json:"username" binding:"required,min=3,max=64" example:"alice"`
	Password string `json:"password" binding:"required,min=6,max=64" example:"secret123"`
	Nickname string `json:"nickname" binding:"max=64" example:"Alice"`
	Email    string `json:"email" binding:"omitempty,email,max=128" example:"alice@example.com"`
}

// Validate 用户名只能包含字母、数字和下划线，并以字母开头
func (form *RegisterForm) Validate() error {
	if !usernameRegex.MatchString(form.Username) {
		return fmt.Errorf("用户名只能包含字母、数字和下划线，并以字母开头")
	}
	return nil
}

func (form *RegisterForm) ToUser() *core.User {
	return &core.User{
		Username: form.Username,
		Nickname: form.Nickname,
		Email:    form.Email,
	}
}

// LoginForm 登录
type LoginForm struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UserInfoForm 管理员修改用户信息，未传的字段保持不变
type UserInfoForm struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=64"`
	Email    *string `json:"email" binding:"omitempty,email,max=128"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
	RoleID   *uint   `json:"role_id"`
}

// UpdateUser 更新用户，role_id为0表示取消角色
func (form *UserInfoForm) UpdateUser(user *core.User) {
	if form.Nickname != nil {
		user.Nickname = *form.Nickname
	}
	if form.Email != nil {
		user.Email = *form.Email
	}
	if form.IsActive != nil {
		user.IsActive = form.IsActive
	}
	if form.IsAdmin != nil {
		user.IsAdmin = form.IsAdmin
	}
	if form.RoleID != nil {
		if *form.RoleID == 0 {
			user.RoleID = nil
		} else {
			user.RoleID = form.RoleID
		}
	}
}

// ChangePasswordForm 修改自己的密码
type ChangePasswordForm struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

func (form *ChangePasswordForm) Validate() error {
	if form.OldPassword == form.NewPassword {
		return fmt.Errorf("新密码不能和旧密码相同")
	}
	return nil
}
