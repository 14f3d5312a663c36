package documents

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteDocument 删除资产文档
// DELETE /api/v1/assets/:assetId/documents/:documentId
func (h *Handler) DeleteDocument(c *gin.Context) {
	assetID, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	documentID, err := strconv.ParseUint(c.Param("documentId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, err := h.repo.GetByIDAndAsset(c.Request.Context(), uint(documentID), uint(assetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Document not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	if err := h.repo.DeleteByIDAndAsset(c.Request.Context(), uint(documentID), uint(assetID)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	// 落盘文件异步清理，清理失败不影响删除结果，只记录日志
	if doc.StoragePath != "" {
		if provider := h.storageFactory.GetDefault(); provider != nil {
			storagePath := doc.StoragePath
			utils.SafeGo(func() {
				if err := provider.DeleteWithContext(context.Background(), storagePath); err != nil {
					log.Printf("Failed to delete document file %s: %v", storagePath, err)
				}
			})
		}
	}

	common.RespondSuccessMessage(c, "Document deleted", nil)
}
