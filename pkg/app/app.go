// Package app 应用程序核心模块
//
// 负责应用程序的初始化、路由注册、后台任务启动和优雅关闭
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/controllers/forms"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/middleware"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newApp 创建Gin应用并注册全局中间件
func newApp() *gin.Engine {
	app := gin.New()
	app.Use(gin.Recovery())
	app.Use(middleware.RequestID())
	// CORS中间件必须在所有路由之前注册
	app.Use(middleware.CORSMiddleware(config.Auth.Header))
	app.Use(middleware.PrometheusMiddleware())
	if config.Log.Level == "debug" {
		app.Use(gin.Logger())
	}
	return app
}

// Run 启动API服务器，阻塞直到收到关闭信号
func Run() {
	logger.InitLogger()
	logger.Info("Blog API Server 启动中", zap.String("监听地址", config.Web.Address()))

	forms.RegisterValidators()

	app := newApp()
	bg := initRouter(app)

	var scheduler *Scheduler
	if config.Scheduler.Enabled {
		scheduler = NewScheduler(bg.guard, bg.articles, config.Web.SlowThreshold)
		if err := scheduler.Start(config.Scheduler.PublishSpec); err != nil {
			logger.Fatal("启动定时任务调度器失败", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:         config.Web.Address(),
		Handler:      app,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Blog API Server 已启动", zap.String("监听地址", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	gracefulShutdown(server, scheduler, bg)
}

// gracefulShutdown 收到SIGINT/SIGTERM后依次关闭调度器、HTTP服务、数据库和Redis
func gracefulShutdown(server *http.Server, scheduler *Scheduler, bg *backgroundServices) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("收到关闭信号，开始优雅关闭", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(ctx)
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP服务器关闭失败", zap.Error(err))
	} else {
		logger.Info("HTTP服务器已关闭")
	}

	if err := core.CloseDB(); err != nil {
		logger.Error("数据库连接关闭失败", zap.Error(err))
	}
	if err := bg.redis.Close(); err != nil {
		logger.Error("Redis连接关闭失败", zap.Error(err))
	}
	if err := core.CloseRedis(); err != nil {
		logger.Error("Redis连接关闭失败", zap.Error(err))
	}

	logger.Info("Blog API Server 已优雅关闭")
	_ = logger.Sync()
}
