package stock

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 库存记录仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的库存记录仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存库存记录
func (r *Repository) Create(ctx context.Context, entry *models.StockEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByID 通过ID获取库存记录
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List 分页获取库存记录，assetID 为 0 时不过滤资产
func (r *Repository) List(ctx context.Context, assetID uint, page, pageSize int) ([]*models.StockEntry, int64, error) {
	var entries []*models.StockEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&models.StockEntry{})
	if assetID != 0 {
		db = db.Where("asset_id = ?", assetID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("entry_date desc, id desc").Offset(offset).Limit(pageSize).Find(&entries).Error
	return entries, total, err
}

// Update 更新库存记录
func (r *Repository) Update(ctx context.Context, entry *models.StockEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete 删除库存记录
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.StockEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
