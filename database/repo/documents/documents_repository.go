package documents

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 文档附件仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的文档附件仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存文档记录
func (r *Repository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByIDAndAsset 通过文档ID和资产ID获取文档
// 两个谓词都是强制的：id 命中但 asset_id 不符时按未找到处理，防止跨资产越权读取
func (r *Repository) GetByIDAndAsset(ctx context.Context, id, assetID uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", id, assetID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByAsset 获取资产的文档列表（不携带 blob 列）
func (r *Repository) ListByAsset(ctx context.Context, assetID uint, page, pageSize int) ([]*models.Document, int64, error) {
	var docs []*models.Document
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Document{}).Where("asset_id = ?", assetID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Omit("document_data").
		Order("created_at desc").Offset(offset).Limit(pageSize).Find(&docs).Error
	return docs, total, err
}

// DeleteByIDAndAsset 通过文档ID和资产ID删除文档
func (r *Repository) DeleteByIDAndAsset(ctx context.Context, id, assetID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", id, assetID).
		Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
