package documents

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
	"github.com/teolier/asset-office/utils"
	"github.com/gin-gonic/gin"
)

// UploadDocument 上传资产文档
// POST /api/v1/assets/:assetId/documents
//
// 小文件直接存数据库行内，超过行内阈值的落盘到存储后端。
func (h *Handler) UploadDocument(c *gin.Context) {
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
	if !settings.IsDocumentTypeAllowed(ext) {
		common.RespondError(c, http.StatusBadRequest, fmt.Sprintf("Document type %q is not allowed", ext))
		return
	}

	maxSize := int64(settings.MaxDocumentSizeMB) * 1024 * 1024
	if fileHeader.Size > maxSize {
		common.RespondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File size exceeds maximum allowed (%d MB)", settings.MaxDocumentSizeMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	uploaderID, _ := middleware.CurrentUserID(c)
	doc := &models.Document{
		AssetID:      uint(assetID),
		DocumentName: fileHeader.Filename,
		DocumentType: ext,
		FileSize:     int64(len(data)),
		UploadedBy:   uploaderID,
	}

	if int64(len(data)) <= h.cfg.InlineLimitBytes() {
		doc.DocumentData = data
	} else {
		provider := h.storageFactory.GetDefault()
		if provider == nil {
			common.RespondError(c, http.StatusInternalServerError, "No storage provider configured")
			return
		}

		storagePath := h.pathGen.GenerateDocumentPath(ext, time.Now())
		if err := provider.SaveWithContext(c.Request.Context(), storagePath, bytes.NewReader(data)); err != nil {
			common.RespondError(c, http.StatusInternalServerError, "Failed to store document")
			return
		}
		doc.StoragePath = storagePath
	}

	if err := h.repo.Create(c.Request.Context(), doc); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to save document record")
		return
	}

	// 文件名来自客户端，进日志前先清理
	log.Printf("Uploaded document %d for asset %d: %s", doc.ID, doc.AssetID, utils.SanitizeLogMessage(doc.DocumentName))

	common.RespondCreated(c, gin.H{
		"id":            doc.ID,
		"asset_id":      doc.AssetID,
		"document_name": doc.DocumentName,
		"document_type": doc.DocumentType,
		"file_size":     doc.FileSize,
	})
}
