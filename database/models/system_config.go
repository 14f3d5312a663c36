package models

import (
	"time"

	"gorm.io/gorm"
)

// ConfigCategory 配置分类
type ConfigCategory string

const (
	// ConfigCategoryThumbnail 缩略图配置
	ConfigCategoryThumbnail ConfigCategory = "thumbnail"
	// ConfigCategoryUpload 上传配置
	ConfigCategoryUpload ConfigCategory = "upload"
)

// SystemConfig 通用系统配置表
type SystemConfig struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Category ConfigCategory `gorm:"index:idx_category_default;not null" json:"category"`
	Name     string         `gorm:"not null" json:"name"`
	Key      string         `gorm:"uniqueIndex;not null" json:"key"`

	IsDefault bool `gorm:"default:false;index:idx_category_default" json:"is_default"`

	// ConfigJSON 使用 type:text 保底，Postgres -> jsonb
	ConfigJSON string `gorm:"type:text;not null" json:"-"`

	Description string `json:"description"`
}

// TableName 指定表名
func (SystemConfig) TableName() string {
	return "system_configs"
}
