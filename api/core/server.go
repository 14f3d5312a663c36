// Package core 组装 HTTP 服务：路由、中间件与依赖注入。
package core

import (
	"net/http"
	"time"

	"github.com/teolier/asset-office/api"
	"github.com/teolier/asset-office/api/common"
	assetsHandler "github.com/teolier/asset-office/api/handler/assets"
	dashboardHandler "github.com/teolier/asset-office/api/handler/dashboard"
	documentsHandler "github.com/teolier/asset-office/api/handler/documents"
	imagesHandler "github.com/teolier/asset-office/api/handler/images"
	stockHandler "github.com/teolier/asset-office/api/handler/stock"
	usersHandler "github.com/teolier/asset-office/api/handler/users"
	"github.com/teolier/asset-office/api/middleware"
	"github.com/teolier/asset-office/config"
	configdb "github.com/teolier/asset-office/config/db"
	assetsRepo "github.com/teolier/asset-office/database/repo/assets"
	dashboardRepo "github.com/teolier/asset-office/database/repo/dashboard"
	documentsRepo "github.com/teolier/asset-office/database/repo/documents"
	imagesRepo "github.com/teolier/asset-office/database/repo/images"
	stockRepo "github.com/teolier/asset-office/database/repo/stock"
	tokensRepo "github.com/teolier/asset-office/database/repo/tokens"
	usersRepo "github.com/teolier/asset-office/database/repo/users"
	"github.com/teolier/asset-office/internal/auth"
	"github.com/teolier/asset-office/internal/dashboard"
	"github.com/teolier/asset-office/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	ConfigManager  *configdb.Manager
	JWTService     *auth.JWTService
}

// setupRouter 组装 gin 路由
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	if config.IsDevelopment() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = int64(cfg.UploadMaxSizeMB) << 20

	// 基础监控指标
	router.Use(middleware.Metrics())

	// 速率限制：认证、API、附件资源分别限流
	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	resourceRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitResourceRPS, cfg.RateLimitResourceBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
		resourceRateLimiter.StopCleanup()
	}

	router.GET("/health", func(c *gin.Context) {
		checks := gin.H{
			"database": checkDatabaseHealth(deps.DB),
			"storage":  checkStorageHealth(deps.StorageFactory),
		}
		httpStatus := http.StatusOK
		for _, checkResult := range checks {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(httpStatus, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks":  checks,
		})
	})
	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetMetrics())
	})

	// 仓库
	assets := assetsRepo.NewRepository(deps.DB)
	documents := documentsRepo.NewRepository(deps.DB)
	images := imagesRepo.NewRepository(deps.DB)
	stocks := stockRepo.NewRepository(deps.DB)
	users := usersRepo.NewRepository(deps.DB)
	tokens := tokensRepo.NewRepository(deps.DB)
	stats := dashboardRepo.NewRepository(deps.DB)

	// 处理器（依赖注入）
	loginService := auth.NewLoginService(users, tokens, deps.JWTService)
	loginHandler := api.NewLoginHandler(loginService)
	assetHandler := assetsHandler.NewHandler(assets)
	documentHandler := documentsHandler.NewHandler(documents, deps.StorageFactory, deps.ConfigManager, cfg)
	imageHandler := imagesHandler.NewHandler(images, deps.DB, deps.StorageFactory, deps.ConfigManager, cfg)
	stockEntryHandler := stockHandler.NewHandler(stocks)
	statsHandler := dashboardHandler.NewHandler(dashboard.NewService(stats))
	userHandler := usersHandler.NewHandler(users)

	// 附件检索接口：无认证，任何知道 (assetId, id) 的调用方都可读取
	// ID 由处理器从原始路径解析，不依赖这里的路由参数
	resourceGroup := router.Group("/api")
	resourceGroup.Use(resourceRateLimiter.Middleware())
	{
		resourceGroup.GET("/:assetId/documents/:documentId", documentHandler.GetDocument) // GET /api/{assetId}/documents/{documentId}
		resourceGroup.GET("/:assetId/images/:imageId", imageHandler.GetImage)             // GET /api/{assetId}/images/{imageId}
	}

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(authRateLimiter.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc)          // POST /api/auth/login
			authGroup.POST("/refresh", loginHandler.RefreshTokenHandlerFunc) // POST /api/auth/refresh
			authGroup.POST("/logout", loginHandler.LogoutHandlerFunc)        // POST /api/auth/logout
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(func(c *gin.Context) { // 管理接口禁止缓存
			c.Header("Cache-Control", "no-store")
			c.Next()
		})
		v1.Use(apiRateLimiter.Middleware())
		v1.Use(middleware.JWTAuth(deps.JWTService))
		{
			assetsGroup := v1.Group("/assets")
			{
				assetsGroup.GET("", assetHandler.ListAssets)              // GET /api/v1/assets
				assetsGroup.POST("", assetHandler.CreateAsset)            // POST /api/v1/assets
				assetsGroup.GET("/:assetId", assetHandler.GetAsset)       // GET /api/v1/assets/{id}
				assetsGroup.PUT("/:assetId", assetHandler.UpdateAsset)    // PUT /api/v1/assets/{id}
				assetsGroup.DELETE("/:assetId", assetHandler.DeleteAsset) // DELETE /api/v1/assets/{id}

				// 附件管理
				assetsGroup.GET("/:assetId/documents", documentHandler.ListDocuments)                 // GET /api/v1/assets/{id}/documents
				assetsGroup.POST("/:assetId/documents", documentHandler.UploadDocument)               // POST /api/v1/assets/{id}/documents
				assetsGroup.DELETE("/:assetId/documents/:documentId", documentHandler.DeleteDocument) // DELETE /api/v1/assets/{id}/documents/{docId}

				assetsGroup.GET("/:assetId/images", imageHandler.ListImages)                       // GET /api/v1/assets/{id}/images
				assetsGroup.POST("/:assetId/images", imageHandler.UploadImage)                     // POST /api/v1/assets/{id}/images
				assetsGroup.DELETE("/:assetId/images/:imageId", imageHandler.DeleteImage)          // DELETE /api/v1/assets/{id}/images/{imageId}
				assetsGroup.GET("/:assetId/images/:imageId/thumbnail", imageHandler.GetThumbnail) // GET /api/v1/assets/{id}/images/{imageId}/thumbnail
			}

			stockGroup := v1.Group("/stock")
			{
				stockGroup.GET("", stockEntryHandler.ListEntries)              // GET /api/v1/stock
				stockGroup.POST("", stockEntryHandler.CreateEntry)             // POST /api/v1/stock
				stockGroup.GET("/:entryId", stockEntryHandler.GetEntry)        // GET /api/v1/stock/{entryId}
				stockGroup.PUT("/:entryId", stockEntryHandler.UpdateEntry)     // PUT /api/v1/stock/{entryId}
				stockGroup.DELETE("/:entryId", stockEntryHandler.DeleteEntry)  // DELETE /api/v1/stock/{entryId}
			}

			v1.GET("/dashboard/stats", statsHandler.GetStats) // GET /api/v1/dashboard/stats

			usersGroup := v1.Group("/users")
			{
				usersGroup.POST("/password", userHandler.ChangePassword) // POST /api/v1/users/password

				adminOnly := usersGroup.Group("")
				adminOnly.Use(middleware.RequireRole("admin"))
				{
					adminOnly.GET("", userHandler.ListUsers)              // GET /api/v1/users
					adminOnly.POST("", userHandler.CreateUser)            // POST /api/v1/users
					adminOnly.GET("/:userId", userHandler.GetUser)        // GET /api/v1/users/{userId}
					adminOnly.PUT("/:userId", userHandler.UpdateUser)     // PUT /api/v1/users/{userId}
					adminOnly.DELETE("/:userId", userHandler.DeleteUser)  // DELETE /api/v1/users/{userId}
				}
			}
		}
	}

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
