package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPermissionType_MatchMethod(t *testing.T) {
	assert.True(t, PermissionAll.MatchMethod("DELETE"))
	assert.True(t, PermissionGet.MatchMethod("get"))
	assert.False(t, PermissionGet.MatchMethod("POST"))
	assert.True(t, PermissionPut.MatchMethod("PATCH"))
	assert.False(t, PermissionType(9).Valid())
	assert.Equal(t, "DELETE", PermissionDelete.String())
}

func TestPermission_Match(t *testing.T) {
	p := &Permission{Type: PermissionGet, URL: "/api/v1/articles"}
	assert.True(t, p.Match("GET", "/api/v1/articles"))
	assert.True(t, p.Match("GET", "/api/v1/articles/12/"))
	assert.False(t, p.Match("GET", "/api/v1/articlesx"))
	assert.False(t, p.Match("POST", "/api/v1/articles"))

	role := &Role{Permissions: []*Permission{p, {Type: PermissionAll, URL: "/api/v1/categories/"}}}
	assert.True(t, role.Allow("DELETE", "/api/v1/categories/3/"))
	assert.False(t, role.Allow("DELETE", "/api/v1/users/3/"))
}

func TestArticle(t *testing.T) {
	a := &Article{AuthorID: 3, Tags: "go, redis,,blog "}
	assert.Equal(t, []string{"go", "redis", "blog"}, a.TagList())

	assert.True(t, a.EditableBy(&AuthenticatedUser{UserID: 3}))
	assert.True(t, a.EditableBy(&AuthenticatedUser{UserID: 4, IsAdmin: true}))
	assert.False(t, a.EditableBy(&AuthenticatedUser{UserID: 4}))
	assert.False(t, a.EditableBy(nil))

	now := time.Now()
	a.Publish(now)
	assert.Equal(t, ArticleStatusPublished, a.Status)
	assert.Equal(t, now, *a.PublishedAt)
}

func TestResultCode_Message(t *testing.T) {
	assert.Equal(t, "重复请求", ResultRepeatRequest.Message())
	assert.Equal(t, "失败", ResultCode(12345).Message())
	assert.Equal(t, 4001, ResultRepeatRequest.Int())
}

func TestUser_ToAuthenticated(t *testing.T) {
	f := false
	roleID := uint(2)
	u := &User{Username: "alice", IsActive: &f, RoleID: &roleID}
	u.ID = 7
	au := u.ToAuthenticated()
	assert.Equal(t, uint(7), au.UserID)
	assert.False(t, au.IsActive)
	assert.False(t, au.IsAdmin)
	assert.Equal(t, uint(2), au.RoleID)
	assert.Equal(t, "alice", au.GetDisplayName())
}
