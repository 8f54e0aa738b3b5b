package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RepeatRequestMessage 重复请求时返回给客户端的提示
const RepeatRequestMessage = "请求正在处理中，请勿重复提交"

// StatusClientClosedRequest 客户端在加锁前断开，沿用nginx的499
const StatusClientClosedRequest = 499

// requestFields 从请求中取出生成key需要的数据
func requestFields(c *gin.Context) guard.Fields {
	fields := guard.Fields{
		IP:     c.ClientIP(),
		User:   "anonymous",
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Param:  c.Param,
		Query:  c.Query,
		Header: c.GetHeader,
	}
	if user, ok := GetCurrentUser(c); ok {
		fields.User = strconv.FormatUint(uint64(user.UserID), 10)
	}
	return fields
}

// RepeatLock 防重复提交中间件
//
// 根据rule.Template生成key，同一个key的请求同一时间只处理一个，
// 重复的请求返回409和ResultRepeatRequest。处理结束(包括panic)后释放锁。
//
// 使用方式：
//
//	articles.PUT("/:id/", middleware.RepeatLock(g, guard.MustRule("article-update", "article:update:{param.id}", 10*time.Second)), controller.Update)
func RepeatLock(g *guard.Guard, rule guard.Rule) gin.HandlerFunc {
	if err := rule.Validate(); err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		key, err := guard.RenderKey(rule.Template, requestFields(c))
		if err != nil {
			logger.Error("生成防重复key失败", zap.String("rule", rule.Name), zap.Error(err))
			abort(c, http.StatusInternalServerError, core.ResultInternalError, "")
			return
		}

		release, err := g.Acquire(c.Request.Context(), rule, key)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				c.AbortWithStatus(StatusClientClosedRequest)
			case errors.Is(err, guard.ErrRepeatRequest):
				abort(c, http.StatusConflict, core.ResultRepeatRequest, RepeatRequestMessage)
			case errors.Is(err, guard.ErrStoreUnavailable):
				abort(c, http.StatusServiceUnavailable, core.ResultBusy, "")
			default:
				logger.Error("防重复加锁失败", zap.String("rule", rule.Name), zap.Error(err))
				abort(c, http.StatusInternalServerError, core.ResultInternalError, "")
			}
			return
		}
		defer release()

		c.Next()
	}
}
