package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/utils/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   core.ResultCode
	}{
		{core.ErrNotFound, http.StatusNotFound, core.ResultNotFound},
		{core.ErrConflict, http.StatusConflict, core.ResultConflict},
		{guard.ErrRepeatRequest, http.StatusConflict, core.ResultRepeatRequest},
		{fmt.Errorf("%w: 分类不存在", core.ErrBadRequest), http.StatusBadRequest, core.ResultParamError},
		{errors.Join(core.ErrUnauthorized, errors.New("token expired")), http.StatusUnauthorized, core.ResultNotLogin},
		{core.ErrInvalidPassword, http.StatusUnauthorized, core.ResultNotLogin},
		{core.ErrUserDisabled, http.StatusForbidden, core.ResultNoAuth},
		{fmt.Errorf("%w: %w", guard.ErrStoreUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, core.ResultBusy},
		{core.ErrStorageDisabled, http.StatusServiceUnavailable, core.ResultBusy},
		{errors.New("boom"), http.StatusInternalServerError, core.ResultInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleError_HidesInternalError(t *testing.T) {
	controller := &BaseController{}
	r := gin.New()
	r.GET("/internal", func(c *gin.Context) { controller.HandleError(c, errors.New("dial tcp 10.0.0.1:3306")) })
	r.GET("/conflict", func(c *gin.Context) { controller.HandleError(c, core.ErrConflict) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal", nil))
	var resp types.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, core.ResultInternalError.Message(), resp.Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, core.ResultConflict.Int(), resp.Code)
	assert.Equal(t, core.ErrConflict.Error(), resp.Message)
}

func TestParsePagination(t *testing.T) {
	controller := &BaseController{}
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 10},
		{"page=3&page_size=20", 3, 20},
		{"page=-1&page_size=abc", 1, 10},
		{"page=5000&page_size=1000", 1000, 100},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		p := controller.ParsePagination(c)
		assert.Equal(t, tt.page, p.Page, tt.query)
		assert.Equal(t, tt.pageSize, p.PageSize, tt.query)
	}
}

func TestFilterAction(t *testing.T) {
	controller := &BaseController{}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?status=draft&search=go", nil)

	actions := controller.FilterAction(c, nil, []string{"title"}, []string{"id"}, "-id")
	// search + ordering，没有可用的过滤选项
	assert.Len(t, actions, 2)

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	actions = controller.FilterAction(c, nil, []string{"title"}, nil, "")
	assert.Empty(t, actions)
}
