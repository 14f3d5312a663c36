package images

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teolier/asset-office/database/models"
	imagesRepo "github.com/teolier/asset-office/database/repo/images"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.Image{}))

	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(imagesRepo.NewRepository(db), db, nil, nil, nil)

	router := gin.New()
	router.GET("/api/:assetId/images/:imageId", handler.GetImage)
	return router
}

func TestGetImage_Success(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	blob := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02}
	img := &models.Image{
		AssetID:   7,
		ImageName: "front.png",
		MimeType:  "image/png",
		ImageData: blob,
		FileSize:  int64(len(blob)),
	}
	require.NoError(t, db.Create(img).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/7/images/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, blob, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="front.png"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
}

// MIME 缺失时回退 image/jpeg
func TestGetImage_DefaultMimeType(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	img := &models.Image{
		AssetID:   7,
		ImageName: "legacy-scan",
		ImageData: []byte{0xff, 0xd8, 0xff},
	}
	require.NoError(t, db.Create(img).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/7/images/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="legacy-scan"`, w.Header().Get("Content-Disposition"))
}

// 未找到的图片返回 200 和中性占位图，避免破坏页面布局
func TestGetImage_NotFoundPlaceholder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/7/images/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "Asset: 7")
	assert.Contains(t, body, "Image: 99")
}

// 非数字 ID 返回 400 和错误占位图，禁止缓存
func TestGetImage_InvalidIdentifierPlaceholder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/abc/images/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	body := w.Body.String()
	assert.Contains(t, body, "Invalid IDs")
	assert.Contains(t, body, "Asset: abc")
	assert.Contains(t, body, "Image: 5")
}

func TestGetImage_EmptyBlobPlaceholder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	img := &models.Image{
		AssetID:   3,
		ImageName: "broken-upload.jpg",
	}
	require.NoError(t, db.Create(img).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/3/images/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "broken-upload.jpg")
}

// id 命中但 asset_id 不符必须按未找到处理
func TestGetImage_CrossAssetIsolation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	img := &models.Image{
		AssetID:   7,
		ImageName: "private.png",
		MimeType:  "image/png",
		ImageData: []byte{0x89, 0x50},
	}
	require.NoError(t, db.Create(img).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/8/images/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Asset: 8")
}

// 数据库不可用时返回 500 和错误占位图而非纯文本
func TestGetImage_StoreFailurePlaceholder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/7/images/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Image unavailable")
}
