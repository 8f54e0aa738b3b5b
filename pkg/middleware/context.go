package middleware

import (
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/types"
	"github.com/gin-gonic/gin"
)

// setUserContext 设置用户信息到Context
func setUserContext(c *gin.Context, user *core.AuthenticatedUser) {
	c.Set(core.ContextKeyUser, user)
	c.Set(core.ContextKeyUserID, user.UserID)
	c.Set(core.ContextKeyUsername, user.Username)
	c.Set(core.ContextKeyIsAdmin, user.IsAdmin)
	c.Set(core.ContextKeyIsAuthenticated, true)
}

// GetCurrentUser 获取当前登录用户，未登录返回false
func GetCurrentUser(c *gin.Context) (*core.AuthenticatedUser, bool) {
	value, exists := c.Get(core.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*core.AuthenticatedUser)
	return user, ok && user != nil
}

// IsAuthenticated 是否已登录
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(core.ContextKeyIsAuthenticated)
}

// abort 中断请求并返回统一的错误结构
func abort(c *gin.Context, status int, code core.ResultCode, message string) {
	if message == "" {
		message = code.Message()
	}
	c.AbortWithStatusJSON(status, types.Response{
		Code:    code.Int(),
		Message: message,
	})
}
