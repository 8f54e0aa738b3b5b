package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/core"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterValidators()
}

func permissionType(t core.PermissionType) *core.PermissionType {
	return &t
}

func TestPermissionForm(t *testing.T) {
	valid := func() PermissionForm {
		return PermissionForm{
			Name:        "查看文章",
			Type:        permissionType(core.PermissionGet),
			URL:         "/api/v1/articles",
			Description: "允许查看文章",
		}
	}

	form := valid()
	require.NoError(t, binding.Validator.ValidateStruct(&form))
	require.NoError(t, form.Validate())
	p := form.ToPermission()
	assert.Equal(t, core.PermissionGet, p.Type)

	tests := []struct {
		name   string
		modify func(f *PermissionForm)
		want   string
	}{
		{"blank name", func(f *PermissionForm) { f.Name = "   " }, "name不能为空"},
		{"long name", func(f *PermissionForm) { f.Name = strings.Repeat("权", 101) }, "name长度不能超过100"},
		{"missing type", func(f *PermissionForm) { f.Type = nil }, "type不能为空"},
		{"illegal type", func(f *PermissionForm) { f.Type = permissionType(9) }, "type的值不合法"},
		{"blank url", func(f *PermissionForm) { f.URL = "" }, "url不能为空"},
		{"long url", func(f *PermissionForm) { f.URL = "/" + strings.Repeat("a", 255) }, "url长度不能超过255"},
		{"long description", func(f *PermissionForm) { f.Description = strings.Repeat("a", 1001) }, "description长度不能超过1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid()
			tt.modify(&form)
			err := binding.Validator.ValidateStruct(&form)
			require.Error(t, err)
			assert.Contains(t, ErrorMessage(err), tt.want)
		})
	}

	// 类型ALL(0)是合法的
	form = valid()
	form.Type = permissionType(core.PermissionAll)
	assert.NoError(t, binding.Validator.ValidateStruct(&form))

	form = valid()
	form.URL = "api/v1"
	assert.Error(t, form.Validate())
}

func TestCategoryForm(t *testing.T) {
	form := CategoryCreateForm{Code: "golang", Name: "Go"}
	require.NoError(t, binding.Validator.ValidateStruct(&form))
	require.NoError(t, form.Validate())

	form.Code = "1golang"
	assert.Error(t, form.Validate())

	form.Code = ""
	assert.Error(t, binding.Validator.ValidateStruct(&form))

	info := CategoryInfoForm{Name: "Golang"}
	category := &core.Category{Code: "golang", Name: "Go"}
	info.UpdateCategory(category)
	assert.Equal(t, "golang", category.Code)
	assert.Equal(t, "Golang", category.Name)
}

func TestRegisterForm(t *testing.T) {
	form := RegisterForm{Username: "alice", Password: "secret123", Email: "alice@example.com"}
	require.NoError(t, binding.Validator.ValidateStruct(&form))
	require.NoError(t, form.Validate())

	form.Username = "9alice"
	assert.Error(t, form.Validate())

	form = RegisterForm{Username: "al", Password: "123", Email: "bad"}
	err := binding.Validator.ValidateStruct(&form)
	require.Error(t, err)
	message := ErrorMessage(err)
	assert.Contains(t, message, "username长度不能少于3")
	assert.Contains(t, message, "password长度不能少于6")
	assert.Contains(t, message, "email格式不正确")
}

func TestUserInfoForm_UpdateUser(t *testing.T) {
	roleID := uint(2)
	active := true
	user := &core.User{Nickname: "old", RoleID: &roleID, IsActive: &active}

	nickname := "new"
	zero := uint(0)
	disabled := false
	form := UserInfoForm{Nickname: &nickname, RoleID: &zero, IsActive: &disabled}
	form.UpdateUser(user)

	assert.Equal(t, "new", user.Nickname)
	assert.Nil(t, user.RoleID)
	assert.False(t, user.Active())
}

func TestArticleForm(t *testing.T) {
	publishAt := time.Now().Add(time.Hour)
	form := ArticleForm{
		Title:     " Go并发模式 ",
		Tags:      []string{"go", " 并发 "},
		PublishAt: &publishAt,
	}
	require.NoError(t, binding.Validator.ValidateStruct(&form))
	require.NoError(t, form.Validate())

	article := form.ToArticle()
	assert.Equal(t, "Go并发模式", article.Title)
	assert.Equal(t, "go,并发", article.Tags)
	assert.Equal(t, []string{"go", "并发"}, article.TagList())

	form.Status = core.ArticleStatusPublished
	assert.Error(t, form.Validate())

	form.Status = "deleted"
	assert.Error(t, binding.Validator.ValidateStruct(&form))

	form = ArticleForm{Title: "x", Tags: []string{" "}}
	assert.Error(t, binding.Validator.ValidateStruct(&form))
}

func TestArticleStatusForm(t *testing.T) {
	assert.Equal(t, core.ArticleStatusPublished, (&ArticleStatusForm{Action: "publish"}).Status())
	assert.Equal(t, core.ArticleStatusArchived, (&ArticleStatusForm{Action: "archive"}).Status())
	assert.Equal(t, core.ArticleStatusDraft, (&ArticleStatusForm{Action: "draft"}).Status())

	form := ArticleStatusForm{Action: "delete"}
	assert.Error(t, binding.Validator.ValidateStruct(&form))
}
