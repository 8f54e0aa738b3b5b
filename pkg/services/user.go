package services

import (
	"context"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/monitoring"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/codelieche/blog/pkg/utils/tools"
	"go.uber.org/zap"
)

// NewUserService 创建UserService实例
func NewUserService(store core.UserStore, tokens core.TokenService) core.UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		now:    time.Now,
	}
}

// UserService 用户服务实现
type UserService struct {
	store  core.UserStore
	tokens core.TokenService
	now    func() time.Time
}

// Register 注册用户
func (s *UserService) Register(ctx context.Context, user *core.User, password string) (*core.User, error) {
	if user.Username == "" || password == "" {
		return nil, core.ErrBadRequest
	}
	hashed, err := tools.HashPassword(password)
	if err != nil {
		logger.Error("hash password error", zap.Error(err))
		return nil, err
	}
	user.Password = hashed

	result, err := s.store.Create(ctx, user)
	if err != nil {
		if err != core.ErrConflict {
			logger.Error("create user error", zap.Error(err), zap.String("username", user.Username))
		}
		return nil, err
	}
	logger.Info("user registered", zap.String("username", result.Username), zap.Uint("id", result.ID))
	return result, nil
}

// Login 登录，用户不存在和密码错误返回相同的错误
func (s *UserService) Login(ctx context.Context, username, password string) (*core.User, string, time.Time, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if err == core.ErrNotFound {
			monitoring.GlobalMetrics.UserLogins.WithLabelValues("failure").Inc()
			return nil, "", time.Time{}, core.ErrInvalidPassword
		}
		logger.Error("find user error", zap.Error(err), zap.String("username", username))
		return nil, "", time.Time{}, err
	}

	if !tools.CheckPassword(user.Password, password) {
		monitoring.GlobalMetrics.UserLogins.WithLabelValues("failure").Inc()
		return nil, "", time.Time{}, core.ErrInvalidPassword
	}
	if !user.Active() {
		monitoring.GlobalMetrics.UserLogins.WithLabelValues("disabled").Inc()
		return nil, "", time.Time{}, core.ErrUserDisabled
	}

	token, expiresAt, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := s.now()
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn("update last login error", zap.Error(err), zap.Uint("id", user.ID))
	} else {
		user.LastLogin = &now
	}

	monitoring.GlobalMetrics.UserLogins.WithLabelValues("success").Inc()
	logger.Info("user login", zap.String("username", user.Username))
	return user, token, expiresAt, nil
}

// Logout 注销token
func (s *UserService) Logout(ctx context.Context, user *core.AuthenticatedUser) error {
	if user == nil || user.Token == "" {
		return core.ErrUnauthorized
	}
	if err := s.tokens.Revoke(ctx, user.Token, user.ExpiresAt); err != nil {
		logger.Error("revoke token error", zap.Error(err), zap.String("username", user.Username))
		return err
	}
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*core.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find user by id error", zap.Error(err), zap.Uint("id", id))
	}
	return user, err
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil && err != core.ErrNotFound {
		logger.Error("find user by username error", zap.Error(err), zap.String("username", username))
	}
	return user, err
}

// Update 更新用户，禁用、管理员或角色变化时注销该用户已签发的token
func (s *UserService) Update(ctx context.Context, user *core.User) (*core.User, error) {
	if user.ID == 0 {
		return nil, core.ErrBadRequest
	}
	before, err := s.store.FindByID(ctx, user.ID)
	if err != nil {
		if err != core.ErrNotFound {
			logger.Error("find user by id error", zap.Error(err), zap.Uint("id", user.ID))
		}
		return nil, err
	}

	result, err := s.store.Update(ctx, user)
	if err != nil {
		if err != core.ErrNotFound {
			logger.Error("update user error", zap.Error(err), zap.Uint("id", user.ID))
		}
		return nil, err
	}

	if accessChanged(before, result) {
		if err := s.revokeUser(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// accessChanged 用户的权限相关字段是否变化
func accessChanged(before, after *core.User) bool {
	if !after.Active() || before.Admin() != after.Admin() {
		return true
	}
	var beforeRole, afterRole uint
	if before.RoleID != nil {
		beforeRole = *before.RoleID
	}
	if after.RoleID != nil {
		afterRole = *after.RoleID
	}
	return beforeRole != afterRole
}

func (s *UserService) revokeUser(ctx context.Context, user *core.User) error {
	if err := s.tokens.RevokeUser(ctx, user.ID); err != nil {
		logger.Error("revoke user tokens error", zap.Error(err), zap.String("username", user.Username))
		return err
	}
	logger.Info("user tokens revoked", zap.String("username", user.Username))
	return nil
}

// ChangePassword 修改密码，需要校验旧密码
func (s *UserService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !tools.CheckPassword(user.Password, oldPassword) {
		return core.ErrInvalidPassword
	}
	hashed, err := tools.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	_, err = s.store.Update(ctx, user)
	return err
}

// Delete 删除用户并注销该用户已签发的token
func (s *UserService) Delete(ctx context.Context, user *core.User) error {
	if err := s.store.Delete(ctx, user); err != nil {
		if err != core.ErrNotFound {
			logger.Error("delete user error", zap.Error(err), zap.Uint("id", user.ID))
		}
		return err
	}
	return s.revokeUser(ctx, user)
}

func (s *UserService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.User, error) {
	users, err := s.store.List(ctx, offset, limit, filterActions...)
	if err != nil {
		logger.Error("list user error", zap.Error(err))
	}
	return users, err
}

func (s *UserService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	count, err := s.store.Count(ctx, filterActions...)
	if err != nil {
		logger.Error("count user error", zap.Error(err))
	}
	return count, err
}
