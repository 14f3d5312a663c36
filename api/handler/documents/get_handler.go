package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/teolier/asset-office/internal/attachment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDocument 检索单个文档附件
// GET /api/:assetId/documents/:documentId
//
// ID 从原始请求路径解析而非路由参数，保证行为不依赖路由层。
// 文档检索失败是"响亮"的：纯文本错误响应，不做任何降级。
func (h *Handler) GetDocument(c *gin.Context) {
	resource, parseErr := attachment.ParseResourcePath(c.Request.URL.Path)
	if parseErr != nil {
		c.String(http.StatusBadRequest, parseErr.Error())
		return
	}

	doc, err := h.repo.GetByIDAndAsset(c.Request.Context(), resource.AttachmentID, resource.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Document not found")
			return
		}
		log.Printf("Failed to fetch document %d for asset %d: %v", resource.AttachmentID, resource.AssetID, err)
		c.String(http.StatusInternalServerError, "Error fetching document")
		return
	}

	data := doc.DocumentData
	if !doc.Inline() && doc.StoragePath != "" {
		data, err = h.readFromStorage(c.Request.Context(), doc.StoragePath)
		if err != nil {
			log.Printf("Failed to read document %d from storage: %v", resource.AttachmentID, err)
			c.String(http.StatusInternalServerError, "Error fetching document")
			return
		}
	}

	contentType, disposition := attachment.ResolveDocumentContentType(doc.DocumentType, doc.DocumentName)

	c.Header("Content-Disposition", disposition)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Asset-ID", fmt.Sprintf("%d", resource.AssetID))
	c.Header("X-Document-ID", fmt.Sprintf("%d", resource.AttachmentID))
	c.Data(http.StatusOK, contentType, data)
}

// readFromStorage 从存储后端读取落盘的文档
func (h *Handler) readFromStorage(ctx context.Context, storagePath string) ([]byte, error) {
	provider := h.storageFactory.GetDefault()
	if provider == nil {
		return nil, errors.New("no default storage provider")
	}

	reader, err := provider.GetWithContext(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
