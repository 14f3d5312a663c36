package assets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/teolier/asset-office/api/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListAssets 资产列表，支持关键字搜索
// GET /api/v1/assets?q=keyword&page=1&page_size=20
func (h *Handler) ListAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	keyword := strings.TrimSpace(c.Query("q"))

	var err error
	var total int64
	var result interface{}

	if keyword != "" {
		assets, count, searchErr := h.repo.Search(c.Request.Context(), keyword, page, pageSize)
		result, total, err = assets, count, searchErr
	} else {
		assets, count, listErr := h.repo.List(c.Request.Context(), page, pageSize)
		result, total, err = assets, count, listErr
	}

	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list assets")
		return
	}

	common.RespondSuccess(c, gin.H{
		"assets":    result,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetAsset 资产详情
// GET /api/v1/assets/:assetId
func (h *Handler) GetAsset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	asset, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}

	common.RespondSuccess(c, asset)
}
