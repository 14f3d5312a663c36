package images

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/teolier/asset-office/internal/attachment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// imageOutcome 图片检索的最终响应，写出前已完全决定
// 封闭的结果集合：新增结果类别时在 GetImage 中穷举映射。
type imageOutcome struct {
	status       int
	contentType  string
	cacheControl string
	disposition  string
	body         []byte
}

const (
	cacheNone     = "no-cache"
	cacheHour     = "public, max-age=3600"
	cacheDay      = "public, max-age=86400"
	fallbackImage = "image"
)

// GetImage 检索单个图片附件
// GET /api/:assetId/images/:imageId
//
// 图片永不响亮失败：除路径段数不足外，所有失败类别都折叠为
// 可渲染的 SVG 占位图，HTTP 状态码只作为程序化调用方的辅助信号。
func (h *Handler) GetImage(c *gin.Context) {
	outcome := h.resolveImage(c)

	c.Header("Cache-Control", outcome.cacheControl)
	if outcome.disposition != "" {
		c.Header("Content-Disposition", outcome.disposition)
	}
	c.Data(outcome.status, outcome.contentType, outcome.body)
}

// resolveImage 单趟状态机，首个命中的状态决定响应
func (h *Handler) resolveImage(c *gin.Context) *imageOutcome {
	resource, parseErr := attachment.ParseResourcePath(c.Request.URL.Path)
	if parseErr != nil {
		if parseErr.Kind == attachment.MalformedPath {
			return &imageOutcome{
				status:       http.StatusBadRequest,
				contentType:  "text/plain; charset=utf-8",
				cacheControl: cacheNone,
				body:         []byte(parseErr.Error()),
			}
		}
		return &imageOutcome{
			status:       http.StatusBadRequest,
			contentType:  attachment.SVGContentType,
			cacheControl: cacheNone,
			body:         attachment.InvalidIDPlaceholder(parseErr.RawAssetID, parseErr.RawAttachmentID),
		}
	}

	img, err := h.repo.GetByIDAndAsset(c.Request.Context(), resource.AttachmentID, resource.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &imageOutcome{
				status:       http.StatusOK,
				contentType:  attachment.SVGContentType,
				cacheControl: cacheHour,
				body:         attachment.NotFoundPlaceholder(resource.AssetID, resource.AttachmentID),
			}
		}
		log.Printf("Failed to fetch image %d for asset %d: %v", resource.AttachmentID, resource.AssetID, err)
		return h.errorOutcome()
	}

	data := img.ImageData
	if !img.Inline() && img.StoragePath != "" {
		data, err = h.readFromStorage(c, img.StoragePath)
		if err != nil {
			log.Printf("Failed to read image %d from storage: %v", resource.AttachmentID, err)
			return h.errorOutcome()
		}
	}

	if len(data) == 0 {
		return &imageOutcome{
			status:       http.StatusOK,
			contentType:  attachment.SVGContentType,
			cacheControl: cacheHour,
			body:         attachment.EmptyBlobPlaceholder(img.ImageName),
		}
	}

	contentType := img.MimeType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &imageOutcome{
		status:       http.StatusOK,
		contentType:  contentType,
		cacheControl: cacheDay,
		disposition:  attachment.InlineDisposition(img.ImageName, fallbackImage),
		body:         data,
	}
}

// errorOutcome 内部错误的通用占位图响应
func (h *Handler) errorOutcome() *imageOutcome {
	return &imageOutcome{
		status:       http.StatusInternalServerError,
		contentType:  attachment.SVGContentType,
		cacheControl: cacheNone,
		body:         attachment.ErrorPlaceholder(),
	}
}

// readFromStorage 从存储后端读取落盘的图片
func (h *Handler) readFromStorage(c *gin.Context, storagePath string) ([]byte, error) {
	provider := h.storageFactory.GetDefault()
	if provider == nil {
		return nil, errors.New("no default storage provider")
	}

	reader, err := provider.GetWithContext(c.Request.Context(), storagePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
