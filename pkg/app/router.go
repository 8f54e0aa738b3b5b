package app

import (
	"context"
	"net/http"
	"time"

	_ "github.com/codelieche/blog/docs" // 导入生成的 Swagger 文档
	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/controllers"
	"github.com/codelieche/blog/pkg/core"
	"github.com/codelieche/blog/pkg/guard"
	"github.com/codelieche/blog/pkg/middleware"
	"github.com/codelieche/blog/pkg/services"
	"github.com/codelieche/blog/pkg/store"
	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/codelieche/blog/pkg/utils/tools"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 防重复规则，key模板见 guard.RenderKey
var (
	registerRule       = guard.MustRule("auth-register", "auth:register:{ip}", 5*time.Second)
	loginRule          = guard.MustRule("auth-login", "auth:login:{ip}", 3*time.Second)
	permissionRule     = guard.MustRule("permission-create", "permission:create:{user}", 5*time.Second)
	articleCreateRule  = guard.MustRule("article-create", "article:create:{user}", 10*time.Second)
	articleUpdateRule  = guard.MustRule("article-update", "article:update:{param.id}", 10*time.Second)
	articleDeleteRule  = guard.MustRule("article-delete", "article:delete:{param.id}", 10*time.Second)
	articleAttachRule  = guard.MustRule("article-attach", "article:attach:{param.id}", time.Minute)
	articleStatusRule  = guard.MustRule("article-status", "article:update:{param.id}", 10*time.Second)
	categoryCreateRule = guard.MustRule("category-create", "category:create:{user}", 5*time.Second)
)

// backgroundServices 路由初始化时创建，Run中启动和关闭
type backgroundServices struct {
	redis    *redis.Client
	guard    *guard.Guard
	articles core.ArticleService
}

// initRouter 初始化所有路由
//
// 依赖按 store -> service -> controller 的顺序创建
func initRouter(app *gin.Engine) *backgroundServices {
	// 根路径
	app.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Blog API Server 运行正常",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Swagger 文档和监控指标
	app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 初始化数据库连接并同步表结构
	db, err := core.GetDB()
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if err := core.AutoMigrate(db); err != nil {
		logger.Fatal("数据库自动迁移失败", zap.Error(err))
	}
	logger.Info("数据库连接和迁移完成")

	redisClient := core.NewRedisClient()

	// 健康检查
	healthController := controllers.NewHealthController(map[string]controllers.HealthCheck{
		"database": databaseCheck(db),
		"redis":    redisCheck,
	})
	app.GET("/health", healthController.Health)
	app.GET("/readiness", healthController.Readiness)
	app.GET("/liveness", healthController.Liveness)

	g, inspector := newGuard(redisClient)

	// ========== store / service ==========
	userStore := store.NewUserStore(db)
	roleStore := store.NewRoleStore(db)
	permissionStore := store.NewPermissionStore(db)
	categoryStore := store.NewCategoryStore(db)
	articleStore := store.NewArticleStore(db)

	tokenService := services.NewTokenService(config.Auth, redisClient)
	userService := services.NewUserService(userStore, tokenService)
	permissionService := services.NewPermissionService(permissionStore, roleStore)
	roleService := services.NewRoleService(roleStore, permissionStore)
	categoryService := services.NewCategoryService(categoryStore, articleStore)
	articleService := services.NewArticleService(articleStore, categoryStore, newObjectStorage(), g)

	// API v1路由组
	apis := app.Group("/api/v1")

	// 配置Session存储
	sstore := cookie.NewStore([]byte(config.Web.SessionSecretKey))
	sstore.Options(sessions.Options{
		Secure:   false,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   3600 * 24 * 7, // 7天过期
	})
	apis.Use(sessions.Sessions(config.Web.SessionIDName, sstore))
	apis.Use(middleware.JwtTokenFilter(tokenService, config.Auth))
	apis.Use(middleware.DurationLog("api", config.Web.SlowThreshold))

	authRequired := middleware.AuthRequired()
	adminRequired := middleware.AdminRequired()
	permissionRequired := middleware.PermissionRequired(permissionService)

	// ========== 认证 ==========
	authController := controllers.NewAuthController(userService)
	authRoutes := apis.Group("/auth")
	{
		authRoutes.POST("/register", middleware.RepeatLock(g, registerRule), authController.Register)
		authRoutes.POST("/login", middleware.RepeatLock(g, loginRule), authController.Login)
		authRoutes.POST("/logout", authRequired, authController.Logout)
		authRoutes.GET("/me", authRequired, authController.Me)
		authRoutes.PUT("/password", authRequired, authController.ChangePassword)
	}

	// ========== 用户管理 ==========
	userController := controllers.NewUserController(userService)
	userRoutes := apis.Group("/users")
	userRoutes.Use(authRequired)
	{
		userRoutes.GET("/", userController.List)
		userRoutes.GET("/:id/", userController.Find)
		userRoutes.PUT("/:id/", adminRequired, userController.Update)
		userRoutes.DELETE("/:id/", adminRequired, userController.Delete)
	}

	// ========== 权限和角色，仅管理员 ==========
	permissionController := controllers.NewPermissionController(permissionService)
	permissionRoutes := apis.Group("/permissions")
	permissionRoutes.Use(authRequired, adminRequired)
	{
		permissionRoutes.POST("/", middleware.RepeatLock(g, permissionRule), permissionController.Create)
		permissionRoutes.GET("/", permissionController.List)
		permissionRoutes.GET("/:id/", permissionController.Find)
		permissionRoutes.PUT("/:id/", permissionController.Update)
		permissionRoutes.DELETE("/:id/", permissionController.Delete)
	}

	roleController := controllers.NewRoleController(roleService)
	roleRoutes := apis.Group("/roles")
	roleRoutes.Use(authRequired, adminRequired)
	{
		roleRoutes.POST("/", roleController.Create)
		roleRoutes.GET("/", roleController.List)
		roleRoutes.GET("/:id/", roleController.Find)
		roleRoutes.PUT("/:id/", roleController.Update)
		roleRoutes.PUT("/:id/permissions/", roleController.SetPermissions)
		roleRoutes.DELETE("/:id/", roleController.Delete)
	}

	// ========== 分类，读接口公开 ==========
	categoryController := controllers.NewCategoryController(categoryService)
	categoryRoutes := apis.Group("/categories")
	{
		categoryRoutes.GET("/", categoryController.List)
		categoryRoutes.GET("/:id/", categoryController.Find) // id或者code
		categoryRoutes.POST("/", authRequired, permissionRequired, middleware.RepeatLock(g, categoryCreateRule), categoryController.Create)
		categoryRoutes.PUT("/:id/", authRequired, permissionRequired, categoryController.Update)
		categoryRoutes.DELETE("/:id/", authRequired, permissionRequired, categoryController.Delete)
	}

	// ========== 文章 ==========
	articleController := controllers.NewArticleController(articleService)
	articleRoutes := apis.Group("/articles")
	{
		articleRoutes.GET("/", articleController.List)
		articleRoutes.GET("/:id/", articleController.Find)
		articleRoutes.POST("/", authRequired, middleware.RepeatLock(g, articleCreateRule), articleController.Create)
		articleRoutes.PUT("/:id/", authRequired, middleware.RepeatLock(g, articleUpdateRule), articleController.Update)
		articleRoutes.PATCH("/:id/status/", authRequired, middleware.RepeatLock(g, articleStatusRule), articleController.SetStatus)
		articleRoutes.DELETE("/:id/", authRequired, middleware.RepeatLock(g, articleDeleteRule), articleController.Delete)
		articleRoutes.POST("/:id/attachments/", authRequired, middleware.RepeatLock(g, articleAttachRule), articleController.Attach)
	}

	// ========== 防重复锁管理，仅管理员 ==========
	repeatLockController := controllers.NewRepeatLockController(g, inspector)
	repeatLockRoutes := apis.Group("/repeat-locks")
	repeatLockRoutes.Use(authRequired, adminRequired)
	{
		repeatLockRoutes.GET("/", repeatLockController.Check)
		repeatLockRoutes.DELETE("/", repeatLockController.Release)
	}

	return &backgroundServices{redis: redisClient, guard: g, articles: articleService}
}

// newObjectStorage 配置了MinIO时返回对象存储，否则返回nil，此时不能上传附件
func newObjectStorage() core.ObjectStorage {
	if !config.MinIO.Enabled() {
		logger.Info("未配置MinIO，文章附件上传不可用")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := tools.NewMinIOClient(ctx, &tools.MinIOConfig{
		Endpoint:        config.MinIO.Endpoint,
		AccessKeyID:     config.MinIO.AccessKeyID,
		SecretAccessKey: config.MinIO.SecretAccessKey,
		UseSSL:          config.MinIO.UseSSL,
		BucketName:      config.MinIO.BucketName,
	})
	if err != nil {
		logger.Error("初始化MinIO失败，文章附件上传不可用", zap.Error(err))
		return nil
	}
	return client
}

func databaseCheck(db *gorm.DB) controllers.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// redisCheck GetRedis内部会ping，不可用时尝试重连
func redisCheck(ctx context.Context) error {
	_, err := core.GetRedis()
	return err
}
