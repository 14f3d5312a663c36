package cmd

import (
	"context"
	"log"

	"github.com/teolier/asset-office/config"
	"github.com/teolier/asset-office/database"
	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/users"
	cryptoutils "github.com/teolier/asset-office/utils/crypto"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

// createAdminCmd 创建管理员账户
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user",
	Run: func(cmd *cobra.Command, args []string) {
		if adminUsername == "" || adminPassword == "" {
			log.Fatal("Both --username and --password are required")
		}
		if len(adminPassword) < 8 {
			log.Fatal("Password must be at least 8 characters")
		}

		config.InitConfig()
		cfg := config.Get()

		db, err := database.NewDB(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		hash, err := cryptoutils.GenerateFromPassword(adminPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		repo := users.NewRepository(db)
		user := &models.User{
			Username: adminUsername,
			Password: hash,
			Role:     models.RoleAdmin,
		}
		if err := repo.Create(context.Background(), user); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}

		log.Printf("Admin user %q created", adminUsername)
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	rootCmd.AddCommand(createAdminCmd)
}
