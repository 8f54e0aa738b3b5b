package services

import (
	"context"
	"testing"

	"github.com/codelieche/blog/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRBAC() (*fakeRoleStore, *fakePermissionStore) {
	permissions := &fakePermissionStore{permissions: map[uint]*core.Permission{
		1: {Name: "查看文章", Type: core.PermissionGet, URL: "/api/v1/articles"},
		2: {Name: "管理分类", Type: core.PermissionAll, URL: "/api/v1/categories"},
	}}
	for id, p := range permissions.permissions {
		p.ID = id
	}
	roles := &fakeRoleStore{roles: map[uint]*core.Role{
		1: {Name: "reader", Permissions: []*core.Permission{permissions.permissions[1]}},
	}}
	roles.roles[1].ID = 1
	return roles, permissions
}

func TestPermissionService_Check(t *testing.T) {
	roles, permissions := newTestRBAC()
	s := NewPermissionService(permissions, roles)
	ctx := context.Background()

	ok, err := s.Check(ctx, &core.AuthenticatedUser{IsAdmin: true}, "DELETE", "/api/v1/users/1/")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Check(ctx, &core.AuthenticatedUser{UserID: 2}, "GET", "/api/v1/articles/")
	assert.False(t, ok)

	reader := &core.AuthenticatedUser{UserID: 2, RoleID: 1}
	ok, _ = s.Check(ctx, reader, "GET", "/api/v1/articles/3/")
	assert.True(t, ok)
	ok, _ = s.Check(ctx, reader, "POST", "/api/v1/articles/")
	assert.False(t, ok)

	ok, _ = s.Check(ctx, &core.AuthenticatedUser{UserID: 2, RoleID: 42}, "GET", "/api/v1/articles/")
	assert.False(t, ok)

	ok, _ = s.Check(ctx, nil, "GET", "/")
	assert.False(t, ok)
}

func TestPermissionService_CreateValidatesType(t *testing.T) {
	roles, permissions := newTestRBAC()
	s := NewPermissionService(permissions, roles)

	_, err := s.Create(context.Background(), &core.Permission{Name: "x", Type: 9, URL: "/x"})
	assert.Equal(t, core.ErrBadRequest, err)

	p, err := s.Create(context.Background(), &core.Permission{Name: "x", Type: core.PermissionPut, URL: "/x"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestRoleService_SetPermissions(t *testing.T) {
	roles, permissions := newTestRBAC()
	s := NewRoleService(roles, permissions)
	ctx := context.Background()

	role, err := s.SetPermissions(ctx, 1, []uint{1, 2, 2})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)
	assert.True(t, role.Allow("DELETE", "/api/v1/categories/1/"))

	_, err = s.SetPermissions(ctx, 1, []uint{1, 99})
	assert.Equal(t, core.ErrBadRequest, err)

	_, err = s.SetPermissions(ctx, 99, []uint{1})
	assert.Equal(t, core.ErrNotFound, err)
}

func TestCategoryService_FindByIDOrCode(t *testing.T) {
	store := &fakeCategoryStore{categories: map[uint]*core.Category{}}
	s := NewCategoryService(store, newFakeArticleStore())
	ctx := context.Background()

	created, err := s.Create(ctx, &core.Category{Code: "golang", Name: "Go"})
	require.NoError(t, err)

	_, err = s.Create(ctx, &core.Category{Code: "golang"})
	assert.Equal(t, core.ErrConflict, err)
	_, err = s.Create(ctx, &core.Category{Name: "empty"})
	assert.Equal(t, core.ErrBadRequest, err)

	byID, err := s.FindByIDOrCode(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created.Code, byID.Code)

	byCode, err := s.FindByIDOrCode(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = s.FindByIDOrCode(ctx, "404")
	assert.Equal(t, core.ErrNotFound, err)
}

func TestCategoryService_DeleteWithArticles(t *testing.T) {
	store := &fakeCategoryStore{categories: map[uint]*core.Category{}}
	articles := newFakeArticleStore()
	s := NewCategoryService(store, articles)
	ctx := context.Background()

	category, err := s.Create(ctx, &core.Category{Code: "golang"})
	require.NoError(t, err)
	_, err = articles.Create(ctx, &core.Article{Title: "Go", CategoryID: &category.ID})
	require.NoError(t, err)

	assert.Equal(t, core.ErrConflict, s.Delete(ctx, category))

	empty, err := s.Create(ctx, &core.Category{Code: "rust"})
	require.NoError(t, err)
	assert.NoError(t, s.Delete(ctx, empty))
}
