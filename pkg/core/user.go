package core

import (
	"context"
	"strings"
	"time"

	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
	"gorm.io/gorm"
)

// User 用户
type User struct {
	types.BaseModel
	Username  string     `gorm:"size:64;unique;not null" json:"username"`
	Nickname  string     `gorm:"size:64" json:"nickname"`
	Email     string     `gorm:"size:128" json:"email"`
	Password  string     `gorm:"size:128;not null" json:"-"`
	IsActive  *bool      `gorm:"type:boolean;default:true" json:"is_active"`
	IsAdmin   *bool      `gorm:"type:boolean;default:false" json:"is_admin"`
	RoleID    *uint      `gorm:"index" json:"role_id"`
	Role      *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	LastLogin *time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// Active 用户是否启用，未设置时默认为启用
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// Admin 是否管理员
func (u *User) Admin() bool {
	return u.IsAdmin != nil && *u.IsAdmin
}

// ToAuthenticated 转换为上下文中的登录用户
func (u *User) ToAuthenticated() *AuthenticatedUser {
	user := &AuthenticatedUser{
		UserID:   u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
		IsActive: u.Active(),
		IsAdmin:  u.Admin(),
		AuthType: "jwt",
	}
	if u.RoleID != nil {
		user.RoleID = *u.RoleID
	}
	return user
}

// BeforeDelete 删除时修改用户名，释放唯一索引
func (u *User) BeforeDelete(tx *gorm.DB) (err error) {
	if u.ID == 0 {
		return
	}
	u.MarkDeleted()
	if u.Username != "" && !strings.Contains(u.Username, "_del_") {
		u.Username = u.Username + "_del_" + u.Strftime("20060102150405")
	}
	return tx.Model(u).UpdateColumns(map[string]interface{}{
		"username": u.Username,
		"deleted":  u.Deleted,
	}).Error
}

// UserStore 用户存储接口
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, obj *User) (*User, error)
	Update(ctx context.Context, obj *User) (*User, error)
	UpdateLastLogin(ctx context.Context, id uint, t time.Time) error
	Delete(ctx context.Context, obj *User) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*User, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}

// UserService 用户服务接口
type UserService interface {
	// Register 注册用户，password为明文
	Register(ctx context.Context, obj *User, password string) (*User, error)

	// Login 校验用户名密码，成功后签发token
	Login(ctx context.Context, username, password string) (user *User, token string, expiresAt time.Time, err error)

	// Logout 注销当前token
	Logout(ctx context.Context, user *AuthenticatedUser) error

	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, obj *User) (*User, error)
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
	Delete(ctx context.Context, obj *User) error
	List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*User, error)
	Count(ctx context.Context, filterActions ...filters.Filter) (int64, error)
}
