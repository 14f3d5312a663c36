package tokens

import (
	"context"
	"fmt"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	return NewRepository(db)
}

func TestCreateAndGetByToken(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "token-a", time.Now().Add(time.Hour)))

	rt, err := repo.GetByToken(ctx, "token-a")
	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, uint(1), rt.UserID)

	rt, err = repo.GetByToken(ctx, "unknown-token")
	require.NoError(t, err)
	assert.Nil(t, rt)
}

// 过期令牌按未命中处理
func TestGetByToken_Expired(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "stale-token", time.Now().Add(-time.Minute)))

	rt, err := repo.GetByToken(ctx, "stale-token")
	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestRotate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "old-token", time.Now().Add(time.Hour)))
	rt, err := repo.GetByToken(ctx, "old-token")
	require.NoError(t, err)
	require.NotNil(t, rt)

	require.NoError(t, repo.Rotate(ctx, rt.ID, "new-token", time.Now().Add(2*time.Hour)))

	old, err := repo.GetByToken(ctx, "old-token")
	require.NoError(t, err)
	assert.Nil(t, old)

	rotated, err := repo.GetByToken(ctx, "new-token")
	require.NoError(t, err)
	require.NotNil(t, rotated)
	assert.Equal(t, rt.ID, rotated.ID)
}

func TestDeleteByToken(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "token-x", time.Now().Add(time.Hour)))
	require.NoError(t, repo.DeleteByToken(ctx, "token-x"))

	rt, err := repo.GetByToken(ctx, "token-x")
	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestDeleteExpired(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "live-token", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, 2, "dead-token-1", time.Now().Add(-time.Hour)))
	require.NoError(t, repo.Create(ctx, 3, "dead-token-2", time.Now().Add(-time.Minute)))

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	rt, err := repo.GetByToken(ctx, "live-token")
	require.NoError(t, err)
	assert.NotNil(t, rt)
}
