package documents

import (
	"net/http"
	"strconv"

	"github.com/teolier/asset-office/api/common"
	"github.com/gin-gonic/gin"
)

// ListDocuments 资产文档列表（不携带 blob 数据）
// GET /api/v1/assets/:assetId/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	assetID, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	docs, total, err := h.repo.ListByAsset(c.Request.Context(), uint(assetID), page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	common.RespondSuccess(c, gin.H{
		"documents": docs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
