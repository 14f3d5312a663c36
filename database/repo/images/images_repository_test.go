package images

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/teolier/asset-office/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Image{}))
	return NewRepository(db)
}

func TestGetByIDAndAsset(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	img := &models.Image{
		AssetID:   7,
		ImageName: "photo.png",
		MimeType:  "image/png",
		ImageData: []byte{0x89, 0x50},
	}
	require.NoError(t, repo.Create(ctx, img))

	got, err := repo.GetByIDAndAsset(ctx, img.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "photo.png", got.ImageName)

	_, err = repo.GetByIDAndAsset(ctx, img.ID, 8)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateThumbnailCAS(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	img := &models.Image{AssetID: 7, ImageName: "photo.png"}
	require.NoError(t, repo.Create(ctx, img))

	// None -> Processing
	ok, err := repo.UpdateThumbnailCAS(ctx, img.ID, models.ThumbnailStatusNone, models.ThumbnailStatusProcessing, "")
	require.NoError(t, err)
	assert.True(t, ok)

	// 重复抢占必须失败
	ok, err = repo.UpdateThumbnailCAS(ctx, img.ID, models.ThumbnailStatusNone, models.ThumbnailStatusProcessing, "")
	require.NoError(t, err)
	assert.False(t, ok)

	// Processing -> Completed 带缩略图路径
	ok, err = repo.UpdateThumbnailCAS(ctx, img.ID, models.ThumbnailStatusProcessing, models.ThumbnailStatusCompleted, "thumbs/photo_320.webp")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThumbnailStatusCompleted, got.ThumbnailStatus)
	assert.Equal(t, "thumbs/photo_320.webp", got.ThumbnailPath)
}

func TestListByAsset_OmitsBlob(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Image{
		AssetID:   3,
		ImageName: "a.jpg",
		ImageData: []byte("jpeg-bytes"),
	}))

	images, total, err := repo.ListByAsset(ctx, 3, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, images, 1)
	assert.Empty(t, images[0].ImageData)
}

func TestDeleteByIDAndAsset(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	img := &models.Image{AssetID: 3, ImageName: "a.jpg"}
	require.NoError(t, repo.Create(ctx, img))

	// 错误的 asset_id 不能删除，且按未找到上报
	err := repo.DeleteByIDAndAsset(ctx, img.ID, 99)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.DeleteByIDAndAsset(ctx, img.ID, 3))
	_, err = repo.GetByID(ctx, img.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
