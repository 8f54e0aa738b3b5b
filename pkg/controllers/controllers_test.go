package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/services"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	forms.RegisterValidators()
}

func withUser(user *core.AuthenticatedUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(core.ContextKeyUser, user)
			c.Set(core.ContextKeyIsAuthenticated, true)
		}
		c.Next()
	}
}

func request(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, types.Response) {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp types.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

type fakePermissionService struct {
	core.PermissionService
	created []*core.Permission
}

func (f *fakePermissionService) Create(ctx context.Context, p *core.Permission) (*core.Permission, error) {
	p.ID = uint(len(f.created) + 1)
	f.created = append(f.created, p)
	return p, nil
}

func TestPermissionController_Create(t *testing.T) {
	service := &fakePermissionService{}
	controller := NewPermissionController(service)
	r := gin.New()
	r.POST("/permissions/", controller.Create)

	w, resp := request(r, http.MethodPost, "/permissions/", map[string]interface{}{
		"name": "发布文章", "type": 2, "url": "/api/v1/articles",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, core.ResultSuccess.Int(), resp.Code)
	require.Len(t, service.created, 1)
	assert.Equal(t, core.PermissionPost, service.created[0].Type)

	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"illegal type", map[string]interface{}{"name": "x", "type": 9, "url": "/x"}, "type"},
		{"blank name", map[string]interface{}{"name": "  ", "type": 1, "url": "/x"}, "name不能为空"},
		{"missing url", map[string]interface{}{"name": "x", "type": 1}, "url不能为空"},
		{"long description", map[string]interface{}{"name": "x", "type": 1, "url": "/x", "description": strings.Repeat("d", 1001)}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := request(r, http.MethodPost, "/permissions/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, core.ResultParamError.Int(), resp.Code)
			assert.Contains(t, resp.Message, tt.want)
		})
	}
	assert.Len(t, service.created, 1)
}

type fakeUserService struct {
	core.UserService
}

func (f *fakeUserService) Login(ctx context.Context, username, password string) (*core.User, string, time.Time, error) {
	if username == "alice" && password == "secret123" {
		return &core.User{Username: "alice"}, "token-1", time.Now().Add(time.Hour), nil
	}
	return nil, "", time.Time{}, core.ErrInvalidPassword
}

func (f *fakeUserService) Register(ctx context.Context, user *core.User, password string) (*core.User, error) {
	if user.Username == "alice" {
		return nil, core.ErrConflict
	}
	user.ID = 2
	return user, nil
}

func TestAuthController(t *testing.T) {
	controller := NewAuthController(&fakeUserService{})
	r := gin.New()
	r.POST("/auth/login", controller.Login)
	r.POST("/auth/register", controller.Register)

	w, resp := request(r, http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "token-1", data["token"])

	w, resp = request(r, http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, core.ResultNotLogin.Int(), resp.Code)

	w, _ = request(r, http.MethodPost, "/auth/register", map[string]string{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = request(r, http.MethodPost, "/auth/register", map[string]string{"username": "bob", "password": "secret123"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = request(r, http.MethodPost, "/auth/register", map[string]string{"username": "_bob", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeArticleService struct {
	core.ArticleService
	articles    map[uint]*core.Article
	views       int
	listFilters int
	uploaded    []byte
}

func newFakeArticleService() *fakeArticleService {
	return &fakeArticleService{articles: map[uint]*core.Article{
		1: {Title: "published", AuthorID: 1, Status: core.ArticleStatusPublished},
		2: {Title: "draft", AuthorID: 1, Status: core.ArticleStatusDraft},
	}}
}

func (f *fakeArticleService) FindByID(ctx context.Context, id uint) (*core.Article, error) {
	if a, ok := f.articles[id]; ok {
		a.ID = id
		return a, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeArticleService) View(ctx context.Context, id uint) (*core.Article, error) {
	f.views++
	return f.FindByID(ctx, id)
}

func (f *fakeArticleService) Update(ctx context.Context, a *core.Article) (*core.Article, error) {
	return a, nil
}

func (f *fakeArticleService) List(ctx context.Context, offset int, limit int, filterActions ...filters.Filter) ([]*core.Article, error) {
	f.listFilters = len(filterActions)
	return []*core.Article{f.articles[1]}, nil
}

func (f *fakeArticleService) Count(ctx context.Context, filterActions ...filters.Filter) (int64, error) {
	return 1, nil
}

func (f *fakeArticleService) Attach(ctx context.Context, a *core.Article, upload *core.Upload) (*core.Attachment, error) {
	f.uploaded, _ = io.ReadAll(upload.Reader)
	return &core.Attachment{ArticleID: a.ID, Name: upload.Name, Size: upload.Size}, nil
}

func TestArticleController_Visibility(t *testing.T) {
	service := newFakeArticleService()
	controller := NewArticleController(service)

	author := &core.AuthenticatedUser{UserID: 1, IsActive: true}
	other := &core.AuthenticatedUser{UserID: 2, IsActive: true}

	r := gin.New()
	r.GET("/anonymous/:id/", controller.Find)
	r.GET("/author/:id/", withUser(author), controller.Find)
	r.PUT("/other/:id/", withUser(other), controller.Update)
	r.PUT("/author/:id/", withUser(author), controller.Update)

	w, _ := request(r, http.MethodGet, "/anonymous/1/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.views)

	w, _ = request(r, http.MethodGet, "/anonymous/2/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = request(r, http.MethodGet, "/author/2/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.views)

	body := map[string]interface{}{"title": "new title"}
	w, resp := request(r, http.MethodPut, "/other/1/", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, core.ResultNoAuth.Int(), resp.Code)

	w, _ = request(r, http.MethodPut, "/author/1/", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new title", service.articles[1].Title)
}

func TestArticleController_ListAnonymous(t *testing.T) {
	service := newFakeArticleService()
	controller := NewArticleController(service)

	r := gin.New()
	r.GET("/anonymous/", controller.List)
	r.GET("/author/", withUser(&core.AuthenticatedUser{UserID: 1, IsActive: true}), controller.List)

	w, resp := request(r, http.MethodGet, "/anonymous/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// 默认排序 + 只看已发布
	assert.Equal(t, 2, service.listFilters)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["count"])

	request(r, http.MethodGet, "/author/", nil)
	assert.Equal(t, 1, service.listFilters)
}

func TestArticleController_Attach(t *testing.T) {
	service := newFakeArticleService()
	controller := NewArticleController(service)
	r := gin.New()
	r.POST("/articles/:id/attachments/", withUser(&core.AuthenticatedUser{UserID: 1, IsActive: true}), controller.Attach)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-data"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/articles/1/attachments/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []byte("png-data"), service.uploaded)

	// 没有文件
	w2, _ := request(r, http.MethodPost, "/articles/1/attachments/", nil)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestRepeatLockController(t *testing.T) {
	store := guard.NewMemoryStore(nil)
	g := guard.New(store, guard.WithPrefix("blog:repeat:"))
	controller := NewRepeatLockController(g, services.NewMemoryInspector(store))

	r := gin.New()
	r.GET("/repeat-locks/", controller.Check)
	r.DELETE("/repeat-locks/", controller.Release)

	_, err := g.TryAcquire(context.Background(), "article:update:1", time.Minute)
	require.NoError(t, err)

	w, resp := request(r, http.MethodGet, "/repeat-locks/?key=article:update:1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["exists"])
	assert.Equal(t, "article:update:1", data["key"])

	w, _ = request(r, http.MethodDelete, "/repeat-locks/?key=article:update:1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err = g.TryAcquire(context.Background(), "article:update:1", time.Minute)
	assert.NoError(t, err)

	w, _ = request(r, http.MethodGet, "/repeat-locks/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthController(t *testing.T) {
	healthy := NewHealthController(map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
	})
	broken := NewHealthController(map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	r := gin.New()
	r.GET("/ok/readiness", healthy.Readiness)
	r.GET("/broken/readiness", broken.Readiness)
	r.GET("/broken/health", broken.Health)
	r.GET("/broken/liveness", broken.Liveness)

	assert.Equal(t, http.StatusOK, httpCode(r, "/ok/readiness"))
	assert.Equal(t, http.StatusServiceUnavailable, httpCode(r, "/broken/readiness"))
	assert.Equal(t, http.StatusOK, httpCode(r, "/broken/liveness"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func httpCode(r http.Handler, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}
