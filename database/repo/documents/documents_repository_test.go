package documents

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
	require.NoError(t, db.AutoMigrate(&models.Document{}))
	return NewRepository(db)
}

func TestGetByIDAndAsset(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	doc := &models.Document{
		AssetID:      11,
		DocumentName: "manual.pdf",
		DocumentData: []byte("pdf-bytes"),
	}
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByIDAndAsset(ctx, doc.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, "manual.pdf", got.DocumentName)
	assert.Equal(t, []byte("pdf-bytes"), got.DocumentData)

	// id 命中但 asset_id 不符不得返回记录
	_, err = repo.GetByIDAndAsset(ctx, doc.ID, 12)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.GetByIDAndAsset(ctx, 999, 11)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListByAsset(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Document{
			AssetID:      5,
			DocumentName: fmt.Sprintf("doc-%d.pdf", i),
			DocumentData: []byte("payload"),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Document{
		AssetID:      6,
		DocumentName: "other.pdf",
	}))

	docs, total, err := repo.ListByAsset(ctx, 5, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, docs, 3)

	// 列表查询不携带 blob 数据
	for _, d := range docs {
		assert.Empty(t, d.DocumentData)
	}

	docs, total, err = repo.ListByAsset(ctx, 5, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, docs, 1)
}

func TestDeleteByIDAndAsset(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	doc := &models.Document{AssetID: 5, DocumentName: "temp.txt"}
	require.NoError(t, repo.Create(ctx, doc))

	// 错误的 asset_id 不能删除，且按未找到上报
	err := repo.DeleteByIDAndAsset(ctx, doc.ID, 99)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = repo.GetByIDAndAsset(ctx, doc.ID, 5)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByIDAndAsset(ctx, doc.ID, 5))
	_, err = repo.GetByIDAndAsset(ctx, doc.ID, 5)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
