package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tokenKeyPrefix   = "blog:user:token:"
	revokedKeyPrefix = "blog:user:revoked:"
	// 值为时间戳(秒)，在这之前签发的token都已失效
	userRevokedKeyPrefix = "blog:user:revoked-before:"
)

// Claims JWT中携带的信息
type Claims struct {
	UserID   uint `json:"uid"`
	IsAdmin  bool `json:"adm,omitempty"`
	RoleID   uint `json:"rid,omitempty"`
	Disabled bool `json:"dis,omitempty"`
	jwt.RegisteredClaims
}

func userRevokedKey(userID uint) string {
	return userRevokedKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// NewTokenService 创建TokenService实例
func NewTokenService(cfg *config.AuthConfig, client redis.Cmdable) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		expire: cfg.Expire,
		client: client,
		now:    time.Now,
	}
}

// TokenService 使用HS256签发token，token和用户名的对应关系保存在Redis中
type TokenService struct {
	secret []byte
	issuer string
	expire time.Duration
	client redis.Cmdable
	now    func() time.Time
}

// Generate 签发token
func (s *TokenService) Generate(ctx context.Context, user *core.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expire)
	claims := &Claims{
		UserID:   user.ID,
		IsAdmin:  user.Admin(),
		Disabled: !user.Active(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if user.RoleID != nil {
		claims.RoleID = *user.RoleID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Error("sign token error", zap.Error(err), zap.String("username", user.Username))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse 校验token的签名、签发者和过期时间
func (s *TokenService) Parse(ctx context.Context, tokenString string) (*core.AuthenticatedUser, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(core.ErrUnauthorized, err)
	}

	user := &core.AuthenticatedUser{
		UserID:   claims.UserID,
		Username: claims.Subject,
		IsActive: !claims.Disabled,
		IsAdmin:  claims.IsAdmin,
		RoleID:   claims.RoleID,
		AuthType: "jwt",
		Token:    tokenString,
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		user.IssuedAt = claims.IssuedAt.Time
	}
	return user, nil
}

// ttl token剩余的有效时间
func (s *TokenService) ttl(expiresAt time.Time) time.Duration {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

// Remember 保存token对应的用户名，过期时间和token一致
func (s *TokenService) Remember(ctx context.Context, token string, user *core.AuthenticatedUser) error {
	return s.client.Set(ctx, tokenKeyPrefix+token, user.Username, s.ttl(user.ExpiresAt)).Err()
}

// Username 获取token对应的用户名
func (s *TokenService) Username(ctx context.Context, token string) (string, error) {
	username, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", core.ErrNotFound
	}
	return username, err
}

// IsRevoked token是否已注销
// token本身被注销，或者签发时间不晚于用户的注销时间，都视为已注销
func (s *TokenService) IsRevoked(ctx context.Context, user *core.AuthenticatedUser) (bool, error) {
	pipe := s.client.Pipeline()
	tokenRevoked := pipe.Exists(ctx, revokedKeyPrefix+user.Token)
	revokedBefore := pipe.Get(ctx, userRevokedKey(user.UserID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if tokenRevoked.Val() > 0 {
		return true, nil
	}
	before, err := revokedBefore.Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	// 没有签发时间的token无法判断，按已注销处理
	return user.IssuedAt.IsZero() || user.IssuedAt.Unix() <= before, nil
}

// Revoke 注销token，记录保留到token过期
func (s *TokenService) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, tokenKeyPrefix+token)
		pipe.Set(ctx, revokedKeyPrefix+token, "1", s.ttl(expiresAt))
		return nil
	})
	return err
}

// RevokeUser 注销用户已签发的所有token，记录保留一个token有效期
func (s *TokenService) RevokeUser(ctx context.Context, userID uint) error {
	return s.client.Set(ctx, userRevokedKey(userID), s.now().Unix(), s.expire).Err()
}

var _ core.TokenService = (*TokenService)(nil)
