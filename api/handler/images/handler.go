// Package images 资产图片附件的上传、检索与管理接口。
// 检索永不"响亮"失败：任何错误都降级为可渲染的占位图。
package images

import (
	"github.com/teolier/asset-office/config"
	configdb "github.com/teolier/asset-office/config/db"
	"github.com/teolier/asset-office/database/repo/images"
	"github.com/teolier/asset-office/storage"
	"github.com/teolier/asset-office/utils/generator"
	"gorm.io/gorm"
)

// Handler 图片处理器
type Handler struct {
	repo           *images.Repository
	db             *gorm.DB
	storageFactory *storage.Factory
	configManager  *configdb.Manager
	pathGen        *generator.PathGenerator
	cfg            *config.Config
}

// NewHandler 创建图片处理器
func NewHandler(repo *images.Repository, db *gorm.DB, storageFactory *storage.Factory, configManager *configdb.Manager, cfg *config.Config) *Handler {
	return &Handler{
		repo:           repo,
		db:             db,
		storageFactory: storageFactory,
		configManager:  configManager,
		pathGen:        generator.NewPathGenerator(),
		cfg:            cfg,
	}
}
