package dashboard

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository Dashboard 统计仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的 Dashboard 统计仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAssets 资产总数
func (r *Repository) CountAssets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&count).Error
	return count, err
}

// CountAssetsByStatus 按状态统计资产数量
func (r *Repository) CountAssetsByStatus(ctx context.Context, status models.AssetStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountUsers 用户总数
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// AttachmentStats 附件统计
type AttachmentStats struct {
	Count int64
	Bytes int64
}

// DocumentStats 文档数量和字节总量
func (r *Repository) DocumentStats(ctx context.Context) (*AttachmentStats, error) {
	var stats AttachmentStats
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Select("COUNT(*) as count, COALESCE(SUM(file_size), 0) as bytes").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ImageStats 图片数量和字节总量
func (r *Repository) ImageStats(ctx context.Context) (*AttachmentStats, error) {
	var stats AttachmentStats
	err := r.db.WithContext(ctx).Model(&models.Image{}).
		Select("COUNT(*) as count, COALESCE(SUM(file_size), 0) as bytes").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// StockBalance 库存结余（入库减出库）
func (r *Repository) StockBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Model(&models.StockEntry{}).
		Select("COALESCE(SUM(CASE WHEN kind = 'in' THEN quantity ELSE -quantity END), 0)").
		Scan(&balance).Error
	return balance, err
}
