package store

import (
	"context"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
	"gorm.io/gorm"
)

// NewUserStore 创建UserStore实例
func NewUserStore(db *gorm.DB) core.UserStore {
	return &UserStore{db: db}
}

// UserStore 用户存储实现
type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*core.User, error) {
	user := &core.User{}
	if err := s.db.WithContext(ctx).Preload("Role.Permissions").First(user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	user := &core.User{}
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// Create 创建用户，用户名重复时返回ErrConflict
func (s *UserStore) Create(ctx context.Context, user *core.User) (*core.User, error) {
	if _, err := s.FindByUsername(ctx, user.Username); err == nil {
		return nil, core.ErrConflict
	} else if err != core.ErrNotFound {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// Update 更新用户，用户名不允许修改
func (s *UserStore) Update(ctx context.Context, user *core.User) (*core.User, error) {
	if user.ID == 0 {
		return nil, core.ErrNotFound
	}
	if _, err := s.FindByID(ctx, user.ID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Model(user).
		Select("nickname", "email", "password", "is_active", "is_admin", "role_id").
		Updates(user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.FindByID(ctx, user.ID)
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id uint, t time.Time) error {
	return s.db.WithContext(ctx).Model(&core.User{}).Where("id = ?", id).
		UpdateColumn("last_login", t).Error
}

// Delete 删除用户，会触发BeforeDelete修改用户名
func (s *UserStore) Delete(ctx context.Context, user *core.User) error {
	if user.ID == 0 {
		return core.ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := &core.User{}
		if err := tx.First(existing, "id = ?", user.ID).Error; err != nil {
			return translateError(err)
		}
		return tx.Delete(existing).Error
	})
}

func (s *UserStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) (users []*core.User, err error) {
	query := s.db.WithContext(ctx).Model(&core.User{}).Offset(offset).Limit(limit)
	query = applyFilters(query, filterActions)
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	var count int64
	query := applyFilters(s.db.WithContext(ctx).Model(&core.User{}), filterActions)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
