package config

import (
	"time"
)

// AuthConfig JWT认证配置
type AuthConfig struct {
	Secret      string        // 签名密钥
	Issuer      string        // 签发者
	Header      string        // 携带token的请求头
	TokenPrefix string        // token前缀，例如 "Bearer "
	Expire      time.Duration // token有效期
	PermitPaths []string      // 不需要校验token的路径前缀
}

var Auth *AuthConfig

func parseAuth() {
	Auth = &AuthConfig{
		Secret:      GetDefaultEnv("JWT_SECRET", "blog-jwt-secret-please-change"),
		Issuer:      GetDefaultEnv("JWT_ISSUER", "blog"),
		Header:      GetDefaultEnv("JWT_HEADER", "Authorization"),
		TokenPrefix: GetDefaultEnv("JWT_TOKEN_PREFIX", "Bearer "),
		Expire:      getEnvDuration("JWT_EXPIRE", 2*time.Hour),
		PermitPaths: getEnvList("AUTH_PERMIT_PATHS", []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/health",
			"/swagger",
			"/metrics",
		}),
	}
}

func init() {
	parseAuth()
}
