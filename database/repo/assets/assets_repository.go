package assets

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 资产仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的资产仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存资产
func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID 通过ID获取资产
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// List 分页获取资产列表
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Asset{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&assets).Error
	return assets, total, err
}

// Search 按关键字搜索资产（名称、编号、描述）
func (r *Repository) Search(ctx context.Context, keyword string, page, pageSize int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	pattern := "%" + keyword + "%"
	db := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("name LIKE ? OR serial_number LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&assets).Error
	return assets, total, err
}

// Update 更新资产
func (r *Repository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete 删除资产
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
