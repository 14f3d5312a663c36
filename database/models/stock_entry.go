package models

import (
	"time"

	"gorm.io/gorm"
)

// StockEntryKind 出入库类型
type StockEntryKind string

const (
	StockEntryKindIn  StockEntryKind = "in"  // 入库
	StockEntryKindOut StockEntryKind = "out" // 出库
)

// StockEntry 库存记录，按资产维度记账
type StockEntry struct {
	gorm.Model
	AssetID   uint           `gorm:"index:idx_stock_asset;not null" json:"asset_id"`
	Kind      StockEntryKind `gorm:"default:'in';not null" json:"kind"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Location  string         `json:"location"`
	Note      string         `gorm:"type:text" json:"note"`
	EntryDate time.Time      `json:"entry_date"`
	CreatedBy uint           `json:"created_by"`
}
