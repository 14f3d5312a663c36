// Package assets 资产台账的增删改查与搜索接口。
package assets

import (
	"github.com/teolier/asset-office/database/repo/assets"
)

// Handler 资产处理器
type Handler struct {
	repo *assets.Repository
}

// NewHandler 创建资产处理器
func NewHandler(repo *assets.Repository) *Handler {
	return &Handler{repo: repo}
}
