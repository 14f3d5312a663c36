package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PathGenerator 附件落盘路径生成器
type PathGenerator struct{}

// NewPathGenerator 创建路径生成器
func NewPathGenerator() *PathGenerator {
	return &PathGenerator{}
}

// GenerateDocumentPath 生成文档存储路径，如 documents/2026/08/31/a1b2c3d4e5f6.pdf
func (pg *PathGenerator) GenerateDocumentPath(ext string, uploadTime time.Time) string {
	return pg.generate("documents", ext, uploadTime)
}

// GenerateImagePath 生成图片存储路径，如 images/2026/08/31/a1b2c3d4e5f6.jpg
func (pg *PathGenerator) GenerateImagePath(ext string, uploadTime time.Time) string {
	return pg.generate("images", ext, uploadTime)
}

// GenerateThumbnailPath 由原图存储路径派生缩略图路径
// 行内存储的图片没有落盘路径，此时用图片记录 ID 作为文件名，
// 保证不同图片的缩略图永远不会互相覆盖。
func (pg *PathGenerator) GenerateThumbnailPath(imageID uint, imagePath string, width int) string {
	name := imagePath
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	if name == "" {
		name = fmt.Sprintf("img%d", imageID)
	}
	datePath := pg.extractDatePath(imagePath)
	return fmt.Sprintf("thumbnails/%s/%s_%d.webp", datePath, name, width)
}

func (pg *PathGenerator) generate(prefix, ext string, uploadTime time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	datePath := uploadTime.Format("2006/01/02")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s/%s/%s%s", prefix, datePath, id, ext)
}

// extractDatePath 从存储路径中提取日期层级，取不到时用当天
func (pg *PathGenerator) extractDatePath(storagePath string) string {
	parts := strings.Split(storagePath, "/")
	if len(parts) >= 4 {
		return strings.Join(parts[1:4], "/")
	}
	return time.Now().Format("2006/01/02")
}
