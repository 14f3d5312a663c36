package models

import "gorm.io/gorm"

// AssetStatus 资产状态常量
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "active"      // 在用
	AssetStatusInStock     AssetStatus = "in_stock"    // 库存
	AssetStatusMaintenance AssetStatus = "maintenance" // 维护中
	AssetStatusRetired     AssetStatus = "retired"     // 已退役
)

// Asset 资产记录
type Asset struct {
	gorm.Model
	Name         string      `gorm:"not null;index" json:"name"`
	SerialNumber string      `gorm:"index" json:"serial_number"`
	Category     string      `gorm:"index" json:"category"`
	Description  string      `gorm:"type:text" json:"description"`
	Location     string      `json:"location"`
	Status       AssetStatus `gorm:"default:'active';not null" json:"status"`
	PurchaseCost int64       `json:"purchase_cost"` // 单位：分

	Documents    []Document   `gorm:"foreignKey:AssetID" json:"-"`
	Images       []Image      `gorm:"foreignKey:AssetID" json:"-"`
	StockEntries []StockEntry `gorm:"foreignKey:AssetID" json:"-"`
}
