package middleware

import (
	"net/http"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired 需要登录，放在JwtTokenFilter之后
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, core.ResultNotLogin, "")
			return
		}
		if !user.IsActive {
			abort(c, http.StatusForbidden, core.ResultNoAuth, "用户已被禁用")
			return
		}
		c.Next()
	}
}

// AdminRequired 需要管理员
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, core.ResultNotLogin, "")
			return
		}
		if !user.IsAdmin {
			logger.Warn("非管理员访问管理接口",
				zap.String("username", user.Username),
				zap.String("path", c.Request.URL.Path))
			abort(c, http.StatusForbidden, core.ResultNoAuth, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// PermissionRequired 根据用户角色的权限校验请求
// 管理员总是允许；其它用户的角色中需要有方法和路径都匹配的权限
func PermissionRequired(permissions core.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, core.ResultNotLogin, "")
			return
		}

		allowed, err := permissions.Check(c.Request.Context(), user, c.Request.Method, c.Request.URL.Path)
		if err != nil {
			logger.Error("check permission error", zap.Error(err), zap.String("username", user.Username))
			abort(c, http.StatusInternalServerError, core.ResultInternalError, "")
			return
		}
		if !allowed {
			abort(c, http.StatusForbidden, core.ResultNoAuth, "")
			return
		}
		c.Next()
	}
}
