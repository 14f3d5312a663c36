// Package documents 资产文档附件的上传、检索与管理接口。
package documents

import (
	"github.com/teolier/asset-office/config"
	configdb "github.com/teolier/asset-office/config/db"
	"github.com/teolier/asset-office/database/repo/documents"
	"github.com/teolier/asset-office/storage"
	"github.com/teolier/asset-office/utils/generator"
)

// Handler 文档处理器
type Handler struct {
	repo           *documents.Repository
	storageFactory *storage.Factory
	configManager  *configdb.Manager
	pathGen        *generator.PathGenerator
	cfg            *config.Config
}

// NewHandler 创建文档处理器
func NewHandler(repo *documents.Repository, storageFactory *storage.Factory, configManager *configdb.Manager, cfg *config.Config) *Handler {
	return &Handler{
		repo:           repo,
		storageFactory: storageFactory,
		configManager:  configManager,
		pathGen:        generator.NewPathGenerator(),
		cfg:            cfg,
	}
}
