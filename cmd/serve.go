package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teolier/asset-office/api/core"
	"github.com/teolier/asset-office/config"
	configdb "github.com/teolier/asset-office/config/db"
	"github.com/teolier/asset-office/database"
	"github.com/teolier/asset-office/database/repo/users"
	"github.com/teolier/asset-office/internal/auth"
	"github.com/teolier/asset-office/internal/worker"
	"github.com/teolier/asset-office/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 创建默认管理员用户（首次启动）
	users.NewRepository(db).CreateDefaultAdminUser()

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	configManager := configdb.NewManager(db)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	if err := configManager.Initialize(initCtx); err != nil {
		cancelInit()
		log.Fatalf("Failed to initialize runtime config: %v", err)
	}
	cancelInit()

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	// 初始化异步任务协程池
	worker.InitGlobalPool(cfg.GetWorkerCount(), 1000)

	deps := &core.ServerDependencies{
		DB:             db,
		StorageFactory: storageFactory,
		ConfigManager:  configManager,
		JWTService:     jwtService,
	}

	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出 signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	worker.StopGlobalPool()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Server exited successfully")
}
