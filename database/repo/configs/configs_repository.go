package configs

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 系统配置仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的系统配置仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetDefaultByCategory 获取分类下的默认配置
func (r *Repository) GetDefaultByCategory(ctx context.Context, category models.ConfigCategory) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_default = ?", category, true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert 创建或更新配置（按 Key 匹配）
func (r *Repository) Upsert(ctx context.Context, cfg *models.SystemConfig) error {
	var existing models.SystemConfig
	err := r.db.WithContext(ctx).Where("key = ?", cfg.Key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(cfg).Error
	}
	if err != nil {
		return err
	}

	cfg.ID = existing.ID
	return r.db.WithContext(ctx).Save(cfg).Error
}
