package middleware

import (
	"strings"

	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JwtTokenFilter 解析请求头中的JWT
//
// 不在放行列表中的路径：请求头以TokenPrefix开头时校验token，
// 校验通过且未注销则记录token和用户名的对应关系，并把用户写入Context。
// 这个中间件不会拒绝请求，需要登录的接口使用AuthRequired。
func JwtTokenFilter(tokens core.TokenService, cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipAuth(c.Request.URL.Path, cfg.PermitPaths) {
			c.Next()
			return
		}
		if _, exists := GetCurrentUser(c); exists {
			c.Next()
			return
		}

		header := c.GetHeader(cfg.Header)
		if header == "" || !strings.HasPrefix(header, cfg.TokenPrefix) {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, cfg.TokenPrefix))
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, err := tokens.Parse(ctx, token)
		if err != nil {
			logger.Debug("token校验失败", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		// 无法确认是否已注销时按未登录处理
		revoked, err := tokens.IsRevoked(ctx, user)
		if err != nil {
			logger.Warn("检查token是否注销失败", zap.Error(err), zap.String("username", user.Username))
			c.Next()
			return
		}
		if revoked {
			logger.Debug("token已注销", zap.String("username", user.Username))
			c.Next()
			return
		}

		if err := tokens.Remember(ctx, token, user); err != nil {
			logger.Warn("保存token失败", zap.Error(err), zap.String("username", user.Username))
		}

		setUserContext(c, user)
		c.Next()
	}
}

// shouldSkipAuth 路径是否在放行列表中，按前缀匹配，"/"只匹配根路径
func shouldSkipAuth(path string, permitPaths []string) bool {
	for _, p := range permitPaths {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
