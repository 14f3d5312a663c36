package images

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/api/middleware"
	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/internal/worker"
	"github.com/teolier/asset-office/utils"
	"github.com/teolier/asset-office/utils/validator"
	"github.com/gin-gonic/gin"
)

// UploadImage 上传资产图片
// POST /api/v1/assets/:assetId/images
//
// 小图直接存数据库行内，大图落盘。尺寸提取和缩略图生成
// 提交到异步协程池，不阻塞上传响应。
func (h *Handler) UploadImage(c *gin.Context) {
	assetID, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "A file is required under the 'file' key")
		return
	}

	settings, err := h.configManager.GetUploadSettings(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to load upload settings")
		return
	}

	ext := utils.GetExtensionFromFilename(fileHeader.Filename)
	if !settings.IsImageTypeAllowed(ext) {
		common.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Image type %q is not allowed", ext))
		return
	}

	maxSize := int64(settings.MaxImageSizeMB) * 1024 * 1024
	if fileHeader.Size > maxSize {
		common.RespondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File size exceeds maximum allowed (%d MB)", settings.MaxImageSizeMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	ok, mimeType, err := validator.IsImage(file)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	if !ok {
		common.RespondError(c, http.StatusBadRequest, "Uploaded file is not a recognized image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	uploaderID, _ := middleware.CurrentUserID(c)
	img := &models.Image{
		AssetID:    uint(assetID),
		ImageName:  fileHeader.Filename,
		MimeType:   mimeType,
		FileSize:   int64(len(data)),
		UploadedBy: uploaderID,
	}

	if int64(len(data)) <= h.cfg.InlineLimitBytes() {
		img.ImageData = data
	} else {
		provider := h.storageFactory.GetDefault()
		if provider == nil {
			common.RespondError(c, http.StatusInternalServerError, "No storage provider configured")
			return
		}

		storagePath := h.pathGen.GenerateImagePath(ext, time.Now())
		if err := provider.SaveWithContext(c.Request.Context(), storagePath, bytes.NewReader(data)); err != nil {
			common.RespondError(c, http.StatusInternalServerError, "Failed to store image")
			return
		}
		img.StoragePath = storagePath
	}

	if err := h.repo.Create(c.Request.Context(), img); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to save image record")
		return
	}

	// 文件名来自客户端，进日志前先清理
	log.Printf("Uploaded image %d for asset %d: %s", img.ID, img.AssetID, utils.SanitizeLogMessage(img.ImageName))

	h.submitPostProcessing(img.ID)

	common.RespondCreated(c, gin.H{
		"id":         img.ID,
		"asset_id":   img.AssetID,
		"image_name": img.ImageName,
		"mime_type":  img.MimeType,
		"file_size":  img.FileSize,
	})
}

// submitPostProcessing 提交尺寸提取与缩略图生成任务
func (h *Handler) submitPostProcessing(imageID uint) {
	provider := h.storageFactory.GetDefault()

	worker.Submit(&worker.ImageDimensionsTask{
		ImageID:    imageID,
		DB:         h.db,
		ImagesRepo: h.repo,
		Storage:    provider,
	})

	worker.Submit(&worker.ThumbnailTask{
		ImageID:       imageID,
		ConfigManager: h.configManager,
		ImagesRepo:    h.repo,
		Storage:       provider,
		PathGen:       h.pathGen,
	})
}
