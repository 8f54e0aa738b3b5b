// Package controllers 控制器基础功能
//
// 统一的响应结构、错误到HTTP状态码的映射、分页和过滤参数解析
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/codelieche/blog/pkg/utils/types"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BaseController 控制器基础结构体，具体的控制器嵌入它
type BaseController struct {
}

// HandleOK 200
func (controller *BaseController) HandleOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.Response{
		Code:    core.ResultSuccess.Int(),
		Message: "ok",
		Data:    data,
	})
}

// HandleCreated 201
func (controller *BaseController) HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, types.Response{
		Code:    core.ResultSuccess.Int(),
		Message: "ok",
		Data:    data,
	})
}

// HandleNoContent 204，用于删除
func (controller *BaseController) HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleList 返回分页列表
func (controller *BaseController) HandleList(c *gin.Context, pagination *types.Pagination, count int64, items interface{}) {
	controller.HandleOK(c, types.ListResponse{
		Count:    count,
		Items:    items,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
}

// ErrorStatus 错误对应的HTTP状态码和业务状态码
func ErrorStatus(err error) (int, core.ResultCode) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, core.ResultNotFound
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict, core.ResultConflict
	case errors.Is(err, guard.ErrRepeatRequest):
		return http.StatusConflict, core.ResultRepeatRequest
	case errors.Is(err, core.ErrBadRequest), errors.As(err, &validationErrors):
		return http.StatusBadRequest, core.ResultParamError
	case errors.Is(err, core.ErrUnauthorized), errors.Is(err, core.ErrInvalidPassword),
		errors.Is(err, core.ErrTokenRevoked):
		return http.StatusUnauthorized, core.ResultNotLogin
	case errors.Is(err, core.ErrForbidden), errors.Is(err, core.ErrUserDisabled):
		return http.StatusForbidden, core.ResultNoAuth
	case errors.Is(err, guard.ErrStoreUnavailable), errors.Is(err, core.ErrStorageDisabled),
		errors.Is(err, core.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, core.ResultBusy
	}
	return http.StatusInternalServerError, core.ResultInternalError
}

// HandleError 根据错误类型返回对应的状态码
// 未知错误统一返回500，错误详情只记录在日志中
func (controller *BaseController) HandleError(c *gin.Context, err error) {
	status, code := ErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(core.ContextKeyRequestID)))
		message = code.Message()
	}
	c.JSON(status, types.Response{
		Code:    code.Int(),
		Message: message,
	})
}

// HandleError400 表单绑定或校验失败
func (controller *BaseController) HandleError400(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.Response{
		Code:    core.ResultParamError.Int(),
		Message: err.Error(),
	})
}

// ParseID 解析路径中的id，不合法时返回ErrBadRequest
func (controller *BaseController) ParseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, core.ErrBadRequest
	}
	return uint(id), nil
}

// ParsePagination 解析分页参数
func (controller *BaseController) ParsePagination(c *gin.Context) *types.Pagination {
	page, err := strconv.Atoi(c.DefaultQuery(pageConfig.PageQueryParam, "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if pageConfig.MaxPage > 0 && page > pageConfig.MaxPage {
		page = pageConfig.MaxPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery(pageConfig.PageSizeQueryParam, "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageConfig.MaxPageSize > 0 && pageSize > pageConfig.MaxPageSize {
		pageSize = pageConfig.MaxPageSize
	}

	return &types.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// FilterAction 组合过滤、搜索、排序
//
//   - filterOptions: 可以过滤的字段
//   - searchFields: search参数模糊搜索的字段
//   - orderingFields: 允许排序的字段
//   - defaultOrdering: 没有传ordering时的排序
func (controller *BaseController) FilterAction(
	c *gin.Context, filterOptions []*filters.FilterOption,
	searchFields []string, orderingFields []string, defaultOrdering string) (filterActions []filters.Filter) {

	if filterAction := filters.FromQueryGetFilterAction(c, filterOptions); filterAction != nil {
		filterActions = append(filterActions, filterAction)
	}

	if searchAction := filters.FromQueryGetSearchAction(c, searchFields); searchAction != nil {
		filterActions = append(filterActions, searchAction)
	}

	if ordering := filters.FromQueryGetOrderingAction(c, orderingFields, defaultOrdering); ordering != nil {
		filterActions = append(filterActions, ordering)
	}

	return filterActions
}
