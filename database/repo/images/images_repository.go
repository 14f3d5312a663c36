package images

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 图片附件仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的图片附件仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存图片记录
func (r *Repository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetByIDAndAsset 通过图片ID和资产ID获取图片
// 两个谓词都是强制的，见 documents.Repository.GetByIDAndAsset
func (r *Repository) GetByIDAndAsset(ctx context.Context, id, assetID uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", id, assetID).
		First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// GetByID 通过图片ID获取图片
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListByAsset 获取资产的图片列表（不携带 blob 列）
func (r *Repository) ListByAsset(ctx context.Context, assetID uint, page, pageSize int) ([]*models.Image, int64, error) {
	var images []*models.Image
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Image{}).Where("asset_id = ?", assetID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Omit("image_data").
		Order("created_at desc").Offset(offset).Limit(pageSize).Find(&images).Error
	return images, total, err
}

// DeleteByIDAndAsset 通过图片ID和资产ID删除图片
func (r *Repository) DeleteByIDAndAsset(ctx context.Context, id, assetID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", id, assetID).
		Delete(&models.Image{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateThumbnailCAS 按期望状态更新缩略图状态，返回是否抢到
func (r *Repository) UpdateThumbnailCAS(ctx context.Context, id uint, from, to models.ThumbnailStatus, path string) (bool, error) {
	updates := map[string]interface{}{"thumbnail_status": to}
	if path != "" {
		updates["thumbnail_path"] = path
	}
	result := r.db.WithContext(ctx).Model(&models.Image{}).
		Where("id = ? AND thumbnail_status = ?", id, from).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}
