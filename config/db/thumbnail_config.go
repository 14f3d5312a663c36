package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/teolier/asset-office/database/models"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// ThumbnailSettings 缩略图配置
type ThumbnailSettings struct {
	Enabled    bool `json:"enabled" mapstructure:"enabled"`         // 是否启用
	MaxWidth   int  `json:"max_width" mapstructure:"max_width"`     // 最大宽度（像素）
	Quality    int  `json:"quality" mapstructure:"quality"`         // JPEG质量 1-100
	MaxRetries int  `json:"max_retries" mapstructure:"max_retries"` // 最大重试次数
}

// DefaultThumbnailSettings 默认缩略图配置
func DefaultThumbnailSettings() *ThumbnailSettings {
	return &ThumbnailSettings{
		Enabled:    true,
		MaxWidth:   320,
		Quality:    85,
		MaxRetries: 3,
	}
}

// GetThumbnailSettings 获取缩略图配置
func (m *Manager) GetThumbnailSettings(ctx context.Context) (*ThumbnailSettings, error) {
	m.cacheMutex.RLock()
	if val, exists := m.localCache[cacheKeyThumbnail]; exists {
		m.cacheMutex.RUnlock()
		return val.(*ThumbnailSettings), nil
	}
	m.cacheMutex.RUnlock()

	m.cacheMutex.Lock()
	defer m.cacheMutex.Unlock()

	// 双重检查
	if val, exists := m.localCache[cacheKeyThumbnail]; exists {
		return val.(*ThumbnailSettings), nil
	}

	raw, err := m.loadCategory(ctx, models.ConfigCategoryThumbnail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings := DefaultThumbnailSettings()
			m.localCache[cacheKeyThumbnail] = settings
			return settings, nil
		}
		return nil, fmt.Errorf("failed to get thumbnail config: %w", err)
	}

	settings := &ThumbnailSettings{}
	if err := mapstructure.Decode(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail settings: %w", err)
	}

	m.localCache[cacheKeyThumbnail] = settings
	return settings, nil
}

// SaveThumbnailSettings 保存缩略图配置
func (m *Manager) SaveThumbnailSettings(ctx context.Context, settings *ThumbnailSettings) error {
	if err := m.saveCategory(ctx, models.ConfigCategoryThumbnail, "Thumbnail Configuration", settings); err != nil {
		return err
	}

	m.cacheMutex.Lock()
	m.localCache[cacheKeyThumbnail] = settings
	m.cacheMutex.Unlock()
	return nil
}
