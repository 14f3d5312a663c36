package worker

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"time"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/images"
	"github.com/teolier/asset-office/storage"
	"gorm.io/gorm"
)

// ImageDimensionsTask 图片尺寸提取任务
type ImageDimensionsTask struct {
	ImageID    uint
	DB         *gorm.DB
	ImagesRepo *images.Repository
	Storage    storage.Provider
}

// Execute 执行任务
func (t *ImageDimensionsTask) Execute() {
	if t.DB == nil {
		log.Printf("Database not provided for image dimensions task")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	record, err := t.ImagesRepo.GetByID(ctx, t.ImageID)
	if err != nil {
		log.Printf("Failed to load image %d for dimension extraction: %v", t.ImageID, err)
		return
	}
	if record.Width > 0 && record.Height > 0 {
		return
	}

	width, height, err := t.extract(ctx, record)
	if err != nil {
		log.Printf("Failed to extract image dimensions for %d: %v", t.ImageID, err)
		return
	}

	result := t.DB.WithContext(ctx).Model(&models.Image{}).
		Where("id = ?", t.ImageID).
		UpdateColumns(map[string]interface{}{
			"width":  width,
			"height": height,
		})
	if result.Error != nil {
		log.Printf("Failed to update image dimensions: %v", result.Error)
	}
}

// extract 解码图片头获取尺寸
func (t *ImageDimensionsTask) extract(ctx context.Context, record *models.Image) (int, int, error) {
	var source io.Reader
	if record.Inline() {
		source = bytes.NewReader(record.ImageData)
	} else {
		reader, err := t.Storage.GetWithContext(ctx, record.StoragePath)
		if err != nil {
			return 0, 0, err
		}
		defer reader.Close()
		source = reader
	}

	cfg, _, err := image.DecodeConfig(source)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
