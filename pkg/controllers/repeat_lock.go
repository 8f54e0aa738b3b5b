package controllers

import (
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/middleware"
	"github.com/codelieche/blog/pkg/services"
	"github.com/codelieche/blog/pkg/utils/controllers"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RepeatLockController 查看和强制释放防重复锁
type RepeatLockController struct {
	controllers.BaseController
	guard     *guard.Guard
	inspector services.LockInspector
}

func NewRepeatLockController(g *guard.Guard, inspector services.LockInspector) *RepeatLockController {
	return &RepeatLockController{guard: g, inspector: inspector}
}

func (controller *RepeatLockController) key(c *gin.Context) (string, bool) {
	key := c.Query("key")
	if key == "" {
		controller.HandleError(c, core.ErrBadRequest)
		return "", false
	}
	return key, true
}

// Check 查看锁状态
// @Summary 查看防重复锁
// @Tags 防重复锁
// @Produce  json
// @Security BearerAuth
// @Param key query string true "锁的key，例如 article:update:1"
// @Success 200 {object} types.Response{data=services.LockInfo}
// @Router /repeat-locks/ [get]
func (controller *RepeatLockController) Check(c *gin.Context) {
	key, ok := controller.key(c)
	if !ok {
		return
	}
	info, err := controller.inspector.Check(c.Request.Context(), controller.guard.StoreKey(key))
	if err != nil {
		controller.HandleError(c, core.ErrServiceUnavailable)
		return
	}
	info.Key = key
	controller.HandleOK(c, info)
}

// Release 强制释放锁，用于处理卡住的锁
// @Summary 强制释放防重复锁
// @Tags 防重复锁
// @Produce  json
// @Security BearerAuth
// @Param key query string true "锁的key"
// @Success 200 {object} types.Response
// @Router /repeat-locks/ [delete]
func (controller *RepeatLockController) Release(c *gin.Context) {
	key, ok := controller.key(c)
	if !ok {
		return
	}
	if err := controller.inspector.Delete(c.Request.Context(), controller.guard.StoreKey(key)); err != nil {
		controller.HandleError(c, core.ErrServiceUnavailable)
		return
	}

	username := ""
	if user, ok := middleware.GetCurrentUser(c); ok {
		username = user.Username
	}
	logger.Warn("强制释放防重复锁", zap.String("key", key), zap.String("operator", username))
	controller.HandleOK(c, nil)
}
