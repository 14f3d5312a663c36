package images

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/internal/attachment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetThumbnail 检索图片缩略图
// GET /api/v1/assets/:assetId/images/:imageId/thumbnail
//
// 缩略图尚未生成或生成失败时回退到原图，失败降级语义与原图检索一致。
func (h *Handler) GetThumbnail(c *gin.Context) {
	assetID, errAsset := strconv.ParseUint(c.Param("assetId"), 10, 32)
	imageID, errImage := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if errAsset != nil || errImage != nil {
		c.Header("Cache-Control", cacheNone)
		c.Data(http.StatusBadRequest, attachment.SVGContentType,
			attachment.InvalidIDPlaceholder(c.Param("assetId"), c.Param("imageId")))
		return
	}

	img, err := h.repo.GetByIDAndAsset(c.Request.Context(), uint(imageID), uint(assetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Header("Cache-Control", cacheHour)
			c.Data(http.StatusOK, attachment.SVGContentType,
				attachment.NotFoundPlaceholder(uint(assetID), uint(imageID)))
			return
		}
		c.Header("Cache-Control", cacheNone)
		c.Data(http.StatusInternalServerError, attachment.SVGContentType, attachment.ErrorPlaceholder())
		return
	}

	if img.ThumbnailStatus == models.ThumbnailStatusCompleted && img.ThumbnailPath != "" {
		if data, err := h.readThumbnail(c, img.ThumbnailPath); err == nil {
			c.Header("Cache-Control", cacheDay)
			c.Data(http.StatusOK, "image/webp", data)
			return
		}
	}

	h.serveOriginal(c, img)
}

// readThumbnail 从存储后端读取缩略图
func (h *Handler) readThumbnail(c *gin.Context, thumbnailPath string) ([]byte, error) {
	data, err := h.readFromStorage(c, thumbnailPath)
	if err != nil {
		log.Printf("Failed to read thumbnail %s: %v", thumbnailPath, err)
	}
	return data, err
}

// serveOriginal 以原图检索的降级语义输出图片记录
func (h *Handler) serveOriginal(c *gin.Context, img *models.Image) {
	data := img.ImageData
	if !img.Inline() && img.StoragePath != "" {
		var err error
		data, err = h.readFromStorage(c, img.StoragePath)
		if err != nil {
			log.Printf("Failed to read image %d from storage: %v", img.ID, err)
			outcome := h.errorOutcome()
			c.Header("Cache-Control", outcome.cacheControl)
			c.Data(outcome.status, outcome.contentType, outcome.body)
			return
		}
	}

	if len(data) == 0 {
		c.Header("Cache-Control", cacheHour)
		c.Data(http.StatusOK, attachment.SVGContentType, attachment.EmptyBlobPlaceholder(img.ImageName))
		return
	}

	contentType := img.MimeType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	c.Header("Cache-Control", cacheDay)
	c.Header("Content-Disposition", attachment.InlineDisposition(img.ImageName, fallbackImage))
	c.Data(http.StatusOK, contentType, data)
}
