package assets

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
	require.NoError(t, db.AutoMigrate(&models.Asset{}))
	return NewRepository(db)
}

func seedAssets(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()
	fixtures := []*models.Asset{
		{Name: "ThinkPad X1", SerialNumber: "LN-001", Category: "laptop", Status: models.AssetStatusActive},
		{Name: "Dell Monitor", SerialNumber: "MN-204", Category: "monitor", Status: models.AssetStatusInStock},
		{Name: "Forklift", SerialNumber: "FK-777", Description: "warehouse forklift", Status: models.AssetStatusMaintenance},
	}
	for _, a := range fixtures {
		require.NoError(t, repo.Create(ctx, a))
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	asset := &models.Asset{Name: "ThinkPad X1", SerialNumber: "LN-001", Status: models.AssetStatusActive}
	require.NoError(t, repo.Create(ctx, asset))
	require.NotZero(t, asset.ID)

	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad X1", got.Name)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSearch(t *testing.T) {
	repo := setupRepo(t)
	seedAssets(t, repo)
	ctx := context.Background()

	// 名称命中
	results, total, err := repo.Search(ctx, "ThinkPad", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "LN-001", results[0].SerialNumber)

	// 编号命中
	_, total, err = repo.Search(ctx, "MN-204", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 描述命中
	_, total, err = repo.Search(ctx, "warehouse", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.Search(ctx, "nonexistent", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestList_Pagination(t *testing.T) {
	repo := setupRepo(t)
	seedAssets(t, repo)
	ctx := context.Background()

	assets, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, assets, 2)

	assets, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	asset := &models.Asset{Name: "Old Name", Status: models.AssetStatusActive}
	require.NoError(t, repo.Create(ctx, asset))

	asset.Name = "New Name"
	asset.Status = models.AssetStatusRetired
	require.NoError(t, repo.Update(ctx, asset))

	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, models.AssetStatusRetired, got.Status)

	require.NoError(t, repo.Delete(ctx, asset.ID))
	_, err = repo.GetByID(ctx, asset.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
