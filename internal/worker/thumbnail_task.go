package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	appconfig "github.com/teolier/asset-office/config"
	config "github.com/teolier/asset-office/config/db"
	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/images"
	"github.com/teolier/asset-office/storage"
	"github.com/teolier/asset-office/utils"
	"github.com/teolier/asset-office/utils/generator"
	"github.com/davidbyttow/govips/v2/vips"
)

// ThumbnailTask 资产图片缩略图生成任务
type ThumbnailTask struct {
	ImageID       uint
	ConfigManager *config.Manager
	ImagesRepo    *images.Repository
	Storage       storage.Provider
	PathGen       *generator.PathGenerator
}

// Execute 执行任务
func (t *ThumbnailTask) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	settings, err := t.ConfigManager.GetThumbnailSettings(ctx)
	if err != nil {
		utils.LogIfDevf("[ThumbnailTask] Failed to get config: %v", err)
		return
	}
	if !settings.Enabled {
		return
	}

	// CAS 获取 processing 状态，避免重复生成
	acquired, err := t.ImagesRepo.UpdateThumbnailCAS(ctx, t.ImageID,
		models.ThumbnailStatusNone, models.ThumbnailStatusProcessing, "")
	if err != nil {
		utils.LogIfDevf("[ThumbnailTask] CAS error for image %d: %v", t.ImageID, err)
		return
	}
	if !acquired {
		utils.LogIfDevf("[ThumbnailTask] Image %d already processing, skipped", t.ImageID)
		return
	}

	thumbnailPath, err := t.process(ctx, settings)
	if err != nil {
		utils.LogIfDevf("[ThumbnailTask] Error: image %d, %v", t.ImageID, err)
		_, _ = t.ImagesRepo.UpdateThumbnailCAS(ctx, t.ImageID,
			models.ThumbnailStatusProcessing, models.ThumbnailStatusFailed, "")
		return
	}

	if _, err := t.ImagesRepo.UpdateThumbnailCAS(ctx, t.ImageID,
		models.ThumbnailStatusProcessing, models.ThumbnailStatusCompleted, thumbnailPath); err != nil {
		utils.LogIfDevf("[ThumbnailTask] Failed to mark image %d completed: %v", t.ImageID, err)
	}
}

// process 读取源图、生成缩略图并落盘
func (t *ThumbnailTask) process(ctx context.Context, settings *config.ThumbnailSettings) (string, error) {
	image, err := t.ImagesRepo.GetByID(ctx, t.ImageID)
	if err != nil {
		return "", fmt.Errorf("failed to load image record: %w", err)
	}

	var source io.Reader
	if image.Inline() {
		source = bytes.NewReader(image.ImageData)
	} else {
		if image.StoragePath == "" {
			return "", fmt.Errorf("image %d has no blob and no storage path", t.ImageID)
		}
		reader, err := t.Storage.GetWithContext(ctx, image.StoragePath)
		if err != nil {
			return "", fmt.Errorf("failed to get source image: %w", err)
		}
		defer reader.Close()
		source = reader
	}

	thumbnailData, err := t.generateThumbnail(ctx, source, settings)
	if err != nil {
		return "", fmt.Errorf("failed to generate thumbnail: %w", err)
	}

	thumbnailPath := t.PathGen.GenerateThumbnailPath(image.ID, image.StoragePath, settings.MaxWidth)
	if err := t.Storage.SaveWithContext(ctx, thumbnailPath, bytes.NewReader(thumbnailData)); err != nil {
		return "", fmt.Errorf("failed to store thumbnail: %w", err)
	}

	return thumbnailPath, nil
}

// generateThumbnail 生成 WebP 缩略图
func (t *ThumbnailTask) generateThumbnail(ctx context.Context, reader io.Reader, settings *config.ThumbnailSettings) ([]byte, error) {
	if err := AcquireImageSlot(ctx); err != nil {
		return nil, fmt.Errorf("acquire image slot: %w", err)
	}
	defer ReleaseImageSlot()

	// vips 解码大图前检查堆内存水位，必要时先 GC
	if err := appconfig.Get().CheckMemoryLimitWithGC(); err != nil {
		return nil, err
	}

	const maxImageSize = 50 * 1024 * 1024
	limitedReader := io.LimitReader(reader, maxImageSize)

	img, err := vips.NewImageFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	defer func() {
		img.Close()
		runtime.GC()
	}()

	width := img.Width()
	height := img.Height()

	quality := settings.Quality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	if width > settings.MaxWidth {
		targetHeight := height * settings.MaxWidth / width
		if err := img.Thumbnail(settings.MaxWidth, targetHeight, vips.InterestingCentre); err != nil {
			return nil, fmt.Errorf("failed to thumbnail image: %w", err)
		}
	}

	webpBytes, _, err := img.ExportWebp(&vips.WebpExportParams{
		Quality:  quality,
		Lossless: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export webp: %w", err)
	}

	return webpBytes, nil
}
