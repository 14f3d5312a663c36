package models

import "gorm.io/gorm"

// Document 资产附件（文档）
// DocumentData 为行内 blob；大文件落盘后只保留 StoragePath。
// 两者都为空时按空附件处理（Content-Length: 0）。
type Document struct {
	gorm.Model
	AssetID      uint   `gorm:"index:idx_documents_asset;not null" json:"asset_id"`
	DocumentName string `gorm:"not null" json:"document_name"`
	DocumentType string `json:"document_type"` // 类型标签（如 "pdf"），可能为空
	DocumentData []byte `gorm:"type:blob" json:"-"`
	StoragePath  string `json:"-"`
	FileSize     int64  `json:"file_size"`
	UploadedBy   uint   `json:"uploaded_by"`
}

// Inline 是否为行内 blob 存储
func (d *Document) Inline() bool {
	return len(d.DocumentData) > 0
}
