package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/teolier/asset-office/database/models"
	"gorm.io/gorm"
)

// Repository 刷新令牌仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的刷新令牌仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 持久化刷新令牌
func (r *Repository) Create(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}).Error
}

// GetByToken 按令牌值查询，未命中或已过期返回 nil
func (r *Repository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rt.IsExpired() {
		return nil, nil
	}
	return &rt, nil
}

// Rotate 轮换刷新令牌
func (r *Repository) Rotate(ctx context.Context, id uint, newToken string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"token":      newToken,
			"expires_at": expiresAt,
		}).Error
}

// DeleteByToken 删除刷新令牌（登出）
func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// DeleteExpired 清理过期令牌
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
