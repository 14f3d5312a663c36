package models

import "gorm.io/gorm"

// ThumbnailStatus 缩略图状态常量
type ThumbnailStatus int8

const (
	ThumbnailStatusNone       ThumbnailStatus = 0 // 未生成
	ThumbnailStatusProcessing ThumbnailStatus = 1 // 生成中
	ThumbnailStatusCompleted  ThumbnailStatus = 2 // 已完成
	ThumbnailStatusFailed     ThumbnailStatus = 3 // 生成失败
)

// Image 资产附件（图片）
// ImageData 为行内 blob；大图落盘后只保留 StoragePath。
type Image struct {
	gorm.Model
	AssetID   uint   `gorm:"index:idx_images_asset;not null" json:"asset_id"`
	ImageName string `json:"image_name"` // 显示名，可能为空
	MimeType  string `json:"mime_type"`  // 自由文本，可能为空
	ImageData []byte `gorm:"type:blob" json:"-"`

	StoragePath string `json:"-"`
	FileSize    int64  `json:"file_size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	UploadedBy  uint   `json:"uploaded_by"`

	ThumbnailPath   string          `json:"-"`
	ThumbnailStatus ThumbnailStatus `gorm:"default:0;not null" json:"-"`
}

// Inline 是否为行内 blob 存储
func (i *Image) Inline() bool {
	return len(i.ImageData) > 0
}
