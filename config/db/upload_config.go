package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teolier/asset-office/database/models"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

// UploadSettings 上传配置
type UploadSettings struct {
	AllowedDocumentTypes []string `json:"allowed_document_types" mapstructure:"allowed_document_types"` // 允许的文档扩展名
	AllowedImageTypes    []string `json:"allowed_image_types" mapstructure:"allowed_image_types"`       // 允许的图片扩展名
	MaxDocumentSizeMB    int      `json:"max_document_size_mb" mapstructure:"max_document_size_mb"`
	MaxImageSizeMB       int      `json:"max_image_size_mb" mapstructure:"max_image_size_mb"`
}

// DefaultUploadSettings 默认上传配置
func DefaultUploadSettings() *UploadSettings {
	return &UploadSettings{
		AllowedDocumentTypes: []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "csv", "zip", "rar"},
		AllowedImageTypes:    []string{"jpg", "jpeg", "png", "gif"},
		MaxDocumentSizeMB:    50,
		MaxImageSizeMB:       20,
	}
}

// IsDocumentTypeAllowed 检查文档扩展名是否允许上传
func (s *UploadSettings) IsDocumentTypeAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range s.AllowedDocumentTypes {
		if allowed == ext {
			return true
		}
	}
	return false
}

// IsImageTypeAllowed 检查图片扩展名是否允许上传
func (s *UploadSettings) IsImageTypeAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range s.AllowedImageTypes {
		if allowed == ext {
			return true
		}
	}
	return false
}

// GetUploadSettings 获取上传配置
func (m *Manager) GetUploadSettings(ctx context.Context) (*UploadSettings, error) {
	m.cacheMutex.RLock()
	if val, exists := m.localCache[cacheKeyUpload]; exists {
		m.cacheMutex.RUnlock()
		return val.(*UploadSettings), nil
	}
	m.cacheMutex.RUnlock()

	m.cacheMutex.Lock()
	defer m.cacheMutex.Unlock()

	if val, exists := m.localCache[cacheKeyUpload]; exists {
		return val.(*UploadSettings), nil
	}

	raw, err := m.loadCategory(ctx, models.ConfigCategoryUpload)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings := DefaultUploadSettings()
			m.localCache[cacheKeyUpload] = settings
			return settings, nil
		}
		return nil, fmt.Errorf("failed to get upload config: %w", err)
	}

	settings := &UploadSettings{}
	if err := mapstructure.Decode(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to decode upload settings: %w", err)
	}

	m.localCache[cacheKeyUpload] = settings
	return settings, nil
}

// SaveUploadSettings 保存上传配置
func (m *Manager) SaveUploadSettings(ctx context.Context, settings *UploadSettings) error {
	if err := m.saveCategory(ctx, models.ConfigCategoryUpload, "Upload Configuration", settings); err != nil {
		return err
	}

	m.cacheMutex.Lock()
	m.localCache[cacheKeyUpload] = settings
	m.cacheMutex.Unlock()
	return nil
}
