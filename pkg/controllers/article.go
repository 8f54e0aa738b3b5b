package controllers

import (
	"fmt"

	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/middleware"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/filters"
	"github.com/gin-gonic/gin"
)

// 附件大小上限
const maxAttachmentSize = 10 << 20

// ArticleController 文章
type ArticleController struct {
	controllers.BaseController
	service core.ArticleService
}

func NewArticleController(service core.ArticleService) *ArticleController {
	return &ArticleController{service: service}
}

// findEditable 获取文章并校验当前用户可以修改
func (controller *ArticleController) findEditable(c *gin.Context) (*core.Article, bool) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	article, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return nil, false
	}
	user, _ := middleware.GetCurrentUser(c)
	if !article.EditableBy(user) {
		controller.HandleError(c, core.ErrForbidden)
		return nil, false
	}
	return article, true
}

// Create 创建文章
// @Summary 创建文章
// @Tags 文章
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body forms.ArticleForm true "文章"
// @Success 201 {object} types.Response{data=core.Article}
// @Failure 409 {object} types.Response "重复提交"
// @Router /articles/ [post]
func (controller *ArticleController) Create(c *gin.Context) {
	var form forms.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	article := form.ToArticle()
	article.AuthorID = user.UserID

	created, err := controller.service.Create(c.Request.Context(), article)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, created)
}

// Find 获取文章，阅读数+1
// 未发布的文章只有作者和管理员可以查看
// @Summary 获取文章
// @Tags 文章
// @Produce  json
// @Param id path int true "文章ID"
// @Success 200 {object} types.Response{data=core.Article}
// @Router /articles/{id}/ [get]
func (controller *ArticleController) Find(c *gin.Context) {
	id, err := controller.ParseID(c, "id")
	if err != nil {
		controller.HandleError(c, err)
		return
	}

	user, _ := middleware.GetCurrentUser(c)
	article, err := controller.service.FindByID(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	if article.Status != core.ArticleStatusPublished {
		if !article.EditableBy(user) {
			controller.HandleError(c, core.ErrNotFound)
			return
		}
		controller.HandleOK(c, article)
		return
	}

	article, err = controller.service.View(c.Request.Context(), id)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, article)
}

// Update 修改文章
// @Summary 修改文章
// @Tags 文章
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param body body forms.ArticleForm true "文章"
// @Success 200 {object} types.Response{data=core.Article}
// @Failure 403 {object} types.Response "不是作者"
// @Failure 409 {object} types.Response "重复提交"
// @Router /articles/{id}/ [put]
func (controller *ArticleController) Update(c *gin.Context) {
	article, ok := controller.findEditable(c)
	if !ok {
		return
	}

	var form forms.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}
	if err := form.Validate(); err != nil {
		controller.HandleError400(c, err)
		return
	}
	form.UpdateArticle(article)

	updated, err := controller.service.Update(c.Request.Context(), article)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// SetStatus 发布、归档或撤回为草稿
// @Summary 修改文章状态
// @Tags 文章
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param body body forms.ArticleStatusForm true "publish/archive/draft"
// @Success 200 {object} types.Response{data=core.Article}
// @Router /articles/{id}/status/ [patch]
func (controller *ArticleController) SetStatus(c *gin.Context) {
	article, ok := controller.findEditable(c)
	if !ok {
		return
	}

	var form forms.ArticleStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.HandleError400(c, errorOf(err))
		return
	}

	updated, err := controller.service.SetStatus(c.Request.Context(), article, form.Status())
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleOK(c, updated)
}

// Delete 删除文章
// @Summary 删除文章
// @Tags 文章
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Success 204
// @Router /articles/{id}/ [delete]
func (controller *ArticleController) Delete(c *gin.Context) {
	article, ok := controller.findEditable(c)
	if !ok {
		return
	}
	if err := controller.service.Delete(c.Request.Context(), article); err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleNoContent(c)
}

// Attach 上传附件
// @Summary 上传附件
// @Tags 文章
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param file formData file true "附件，最大10MB"
// @Success 201 {object} types.Response{data=core.Attachment}
// @Failure 503 {object} types.Response "未配置对象存储"
// @Router /articles/{id}/attachments/ [post]
func (controller *ArticleController) Attach(c *gin.Context) {
	article, ok := controller.findEditable(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		controller.HandleError400(c, fmt.Errorf("请上传文件: %w", err))
		return
	}
	if header.Size > maxAttachmentSize {
		controller.HandleError400(c, fmt.Errorf("附件不能超过%dMB", maxAttachmentSize>>20))
		return
	}
	file, err := header.Open()
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	user, _ := middleware.GetCurrentUser(c)

	attachment, err := controller.service.Attach(c.Request.Context(), article, &core.Upload{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      file,
		UploaderID:  user.UserID,
	})
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleCreated(c, attachment)
}

// List 文章列表
// 未登录时只返回已发布的文章
// @Summary 文章列表
// @Tags 文章
// @Produce  json
// @Param status query string false "状态: draft/published/archived"
// @Param category_id query int false "分类"
// @Param author_id query int false "作者"
// @Param tag query string false "标签"
// @Param search query string false "搜索标题、摘要"
// @Param ordering query string false "排序，例如 -published_at"
// @Success 200 {object} types.Response{data=types.ListResponse}
// @Router /articles/ [get]
func (controller *ArticleController) List(c *gin.Context) {
	pagination := controller.ParsePagination(c)

	filterOptions := []*filters.FilterOption{
		{QueryKey: "status", Column: "status", Op: filters.FILTER_EQ},
		{QueryKey: "category_id", Column: "category_id", Op: filters.FILTER_EQ},
		{QueryKey: "author_id", Column: "author_id", Op: filters.FILTER_EQ},
		{QueryKey: "tag", Column: "tags", Op: filters.FILTER_CONTAINS},
	}
	searchFields := []string{"title", "summary"}
	orderingFields := []string{"id", "title", "created_at", "published_at", "view_count"}

	filterActions := controller.FilterAction(c, filterOptions, searchFields, orderingFields, "-id")
	if !middleware.IsAuthenticated(c) {
		filterActions = append(filterActions, &filters.FilterOption{
			Column: "status",
			Value:  core.ArticleStatusPublished,
			Op:     filters.FILTER_EQ,
		})
	}

	articles, err := controller.service.List(c.Request.Context(), pagination.GetOffset(), pagination.PageSize, filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	count, err := controller.service.Count(c.Request.Context(), filterActions...)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	controller.HandleList(c, pagination, count, articles)
}
