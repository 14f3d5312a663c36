package images

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

// DeleteImage 删除资产图片
// DELETE /api/v1/assets/:assetId/images/:imageId
func (h *Handler) DeleteImage(c *gin.Context) {
	assetID, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	img, err := h.repo.GetByIDAndAsset(c.Request.Context(), uint(imageID), uint(assetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch image")
		return
	}

	if err := h.repo.DeleteByIDAndAsset(c.Request.Context(), uint(imageID), uint(assetID)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	// 落盘文件与缩略图异步清理，清理失败不影响删除结果
	if provider := h.storageFactory.GetDefault(); provider != nil {
		paths := []string{img.StoragePath, img.ThumbnailPath}
		utils.SafeGo(func() {
			for _, path := range paths {
				if path == "" {
					continue
				}
				if err := provider.DeleteWithContext(context.Background(), path); err != nil {
					log.Printf("Failed to delete image file %s: %v", path, err)
				}
			}
		})
	}

	common.RespondSuccessMessage(c, "Image deleted", nil)
}
