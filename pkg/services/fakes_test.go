package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/utils/filters"
)

// 以下是测试用的内存存储实现

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[uint]*core.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*core.User{}}
}

func (s *fakeUserStore) FindByID(ctx context.Context, id uint) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, core.ErrNotFound
}

func (s *fakeUserStore) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, obj *core.User) (*core.User, error) {
	if _, err := s.FindByUsername(ctx, obj.Username); err == nil {
		return nil, core.ErrConflict
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	obj.ID = s.nextID
	c := *obj
	s.users[obj.ID] = &c
	return obj, nil
}

func (s *fakeUserStore) Update(ctx context.Context, obj *core.User) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[obj.ID]; !ok {
		return nil, core.ErrNotFound
	}
	c := *obj
	s.users[obj.ID] = &c
	return obj, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uint, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &t
		return nil
	}
	return core.ErrNotFound
}

func (s *fakeUserStore) Delete(ctx context.Context, obj *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[obj.ID]; !ok {
		return core.ErrNotFound
	}
	delete(s.users, obj.ID)
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []*core.User
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *fakeUserStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type fakeCategoryStore struct {
	categories map[uint]*core.Category
}

func (s *fakeCategoryStore) FindByID(ctx context.Context, id uint) (*core.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, core.ErrNotFound
}

func (s *fakeCategoryStore) FindByCode(ctx context.Context, code string) (*core.Category, error) {
	for _, c := range s.categories {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *fakeCategoryStore) Create(ctx context.Context, obj *core.Category) (*core.Category, error) {
	if _, err := s.FindByCode(ctx, obj.Code); err == nil {
		return nil, core.ErrConflict
	}
	obj.ID = uint(len(s.categories) + 1)
	s.categories[obj.ID] = obj
	return obj, nil
}

func (s *fakeCategoryStore) Update(ctx context.Context, obj *core.Category) (*core.Category, error) {
	if _, ok := s.categories[obj.ID]; !ok {
		return nil, core.ErrNotFound
	}
	s.categories[obj.ID] = obj
	return obj, nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, obj *core.Category) error {
	delete(s.categories, obj.ID)
	return nil
}

func (s *fakeCategoryStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Category, error) {
	var categories []*core.Category
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (s *fakeCategoryStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return int64(len(s.categories)), nil
}

type fakeArticleStore struct {
	mu          sync.Mutex
	articles    map[uint]*core.Article
	attachments []*core.Attachment
	nextID      uint
	failUpdate  map[uint]bool
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: map[uint]*core.Article{}, failUpdate: map[uint]bool{}}
}

func (s *fakeArticleStore) FindByID(ctx context.Context, id uint) (*core.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.articles[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, core.ErrNotFound
}

func (s *fakeArticleStore) Create(ctx context.Context, obj *core.Article) (*core.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	obj.ID = s.nextID
	c := *obj
	s.articles[obj.ID] = &c
	return obj, nil
}

func (s *fakeArticleStore) Update(ctx context.Context, obj *core.Article) (*core.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate[obj.ID] {
		return nil, io.ErrUnexpectedEOF
	}
	if _, ok := s.articles[obj.ID]; !ok {
		return nil, core.ErrNotFound
	}
	c := *obj
	s.articles[obj.ID] = &c
	return obj, nil
}

func (s *fakeArticleStore) Delete(ctx context.Context, obj *core.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[obj.ID]; !ok {
		return core.ErrNotFound
	}
	delete(s.articles, obj.ID)
	return nil
}

func (s *fakeArticleStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var articles []*core.Article
	for _, a := range s.articles {
		articles = append(articles, a)
	}
	return articles, nil
}

func (s *fakeArticleStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.articles)), nil
}

func (s *fakeArticleStore) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, a := range s.articles {
		if a.CategoryID != nil && *a.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *fakeArticleStore) IncreaseViewCount(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.articles[id]; ok {
		a.ViewCount++
		return nil
	}
	return core.ErrNotFound
}

func (s *fakeArticleStore) ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]*core.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var articles []*core.Article
	for _, a := range s.articles {
		if a.Status == core.ArticleStatusDraft && a.PublishAt != nil && !a.PublishAt.After(now) {
			c := *a
			articles = append(articles, &c)
		}
	}
	return articles, nil
}

func (s *fakeArticleStore) AddAttachment(ctx context.Context, obj *core.Attachment) (*core.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj.ID = uint(len(s.attachments) + 1)
	s.attachments = append(s.attachments, obj)
	return obj, nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func (s *fakeStorage) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	s.objects[objectKey] = buf.Bytes()
	return nil
}

func (s *fakeStorage) PresignedURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "http://minio.local/" + objectKey, nil
}

type fakeRoleStore struct {
	roles map[uint]*core.Role
}

func (s *fakeRoleStore) FindByID(ctx context.Context, id uint) (*core.Role, error) {
	if r, ok := s.roles[id]; ok {
		return r, nil
	}
	return nil, core.ErrNotFound
}

func (s *fakeRoleStore) FindByName(ctx context.Context, name string) (*core.Role, error) {
	for _, r := range s.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *fakeRoleStore) Create(ctx context.Context, obj *core.Role) (*core.Role, error) {
	obj.ID = uint(len(s.roles) + 1)
	s.roles[obj.ID] = obj
	return obj, nil
}

func (s *fakeRoleStore) Update(ctx context.Context, obj *core.Role) (*core.Role, error) {
	s.roles[obj.ID] = obj
	return obj, nil
}

func (s *fakeRoleStore) ReplacePermissions(ctx context.Context, obj *core.Role, permissions []*core.Permission) error {
	s.roles[obj.ID].Permissions = permissions
	return nil
}

func (s *fakeRoleStore) Delete(ctx context.Context, obj *core.Role) error {
	delete(s.roles, obj.ID)
	return nil
}

func (s *fakeRoleStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Role, error) {
	var roles []*core.Role
	for _, r := range s.roles {
		roles = append(roles, r)
	}
	return roles, nil
}

func (s *fakeRoleStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return int64(len(s.roles)), nil
}

type fakePermissionStore struct {
	permissions map[uint]*core.Permission
}

func (s *fakePermissionStore) FindByID(ctx context.Context, id uint) (*core.Permission, error) {
	if p, ok := s.permissions[id]; ok {
		return p, nil
	}
	return nil, core.ErrNotFound
}

func (s *fakePermissionStore) FindByIDs(ctx context.Context, ids []uint) ([]*core.Permission, error) {
	var permissions []*core.Permission
	for _, id := range ids {
		if p, ok := s.permissions[id]; ok {
			permissions = append(permissions, p)
		}
	}
	return permissions, nil
}

func (s *fakePermissionStore) Create(ctx context.Context, obj *core.Permission) (*core.Permission, error) {
	obj.ID = uint(len(s.permissions) + 1)
	s.permissions[obj.ID] = obj
	return obj, nil
}

func (s *fakePermissionStore) Update(ctx context.Context, obj *core.Permission) (*core.Permission, error) {
	s.permissions[obj.ID] = obj
	return obj, nil
}

func (s *fakePermissionStore) Delete(ctx context.Context, obj *core.Permission) error {
	delete(s.permissions, obj.ID)
	return nil
}

func (s *fakePermissionStore) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Permission, error) {
	var permissions []*core.Permission
	for _, p := range s.permissions {
		permissions = append(permissions, p)
	}
	return permissions, nil
}

func (s *fakePermissionStore) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return int64(len(s.permissions)), nil
}
