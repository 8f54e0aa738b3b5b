package core

import (
	"context"
	"time"
)

// AuthenticatedUser 当前请求的登录用户
type AuthenticatedUser struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	RoleID    uint      `json:"role_id,omitempty"`
	AuthType  string    `json:"auth_type"`
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetDisplayName 获取用户显示名称
func (u *AuthenticatedUser) GetDisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// Gin Context中的认证信息键名
const (
	ContextKeyUser            = "user"
	ContextKeyUserID          = "user_id"
	ContextKeyUsername        = "username"
	ContextKeyIsAuthenticated = "is_authenticated"
	ContextKeyIsAdmin         = "is_admin"
	ContextKeyRequestID       = "request_id"
)

// TokenService JWT签发与校验
type TokenService interface {
	// Generate 为用户签发token
	Generate(ctx context.Context, user *User) (token string, expiresAt time.Time, err error)

	// Parse 校验签名和过期时间，返回token中携带的用户信息
	Parse(ctx context.Context, token string) (*AuthenticatedUser, error)

	// Remember 记录token和用户名的对应关系
	Remember(ctx context.Context, token string, user *AuthenticatedUser) error

	// IsRevoked token是否已经注销，包括token本身被注销和用户在签发之后被注销
	IsRevoked(ctx context.Context, user *AuthenticatedUser) (bool, error)

	// Revoke 注销token
	Revoke(ctx context.Context, token string, expiresAt time.Time) error

	// RevokeUser 注销用户当前已签发的所有token
	RevokeUser(ctx context.Context, userID uint) error
}
