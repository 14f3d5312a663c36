package documents

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	documentsRepo "github.com/teolier/asset-office/database/repo/documents"
	"github.com/teolier/asset-office/database/models"
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

	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.Document{}))

	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(documentsRepo.NewRepository(db), nil, nil, nil)

	router := gin.New()
	router.GET("/api/:assetId/documents/:documentId", handler.GetDocument)
	return router
}

func TestGetDocument_Success(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	blob := []byte("%PDF-1.4 fake pdf content")
	doc := &models.Document{
		AssetID:      11,
		DocumentName: "report.pdf",
		DocumentData: blob,
		FileSize:     int64(len(blob)),
	}
	require.NoError(t, db.Create(doc).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/11/documents/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, blob, w.Body.Bytes())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="report.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.Equal(t, "11", w.Header().Get("X-Asset-ID"))
	assert.Equal(t, "1", w.Header().Get("X-Document-ID"))
}

func TestGetDocument_AttachmentDisposition(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := &models.Document{
		AssetID:      3,
		DocumentName: "inventory.xlsx",
		DocumentData: []byte("spreadsheet-bytes"),
	}
	require.NoError(t, db.Create(doc).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/3/documents/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="inventory.xlsx"`, w.Header().Get("Content-Disposition"))
}

func TestGetDocument_NotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/11/documents/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", w.Body.String())
}

// id 命中但 asset_id 不符必须按未找到处理
func TestGetDocument_CrossAssetIsolation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := &models.Document{
		AssetID:      11,
		DocumentName: "secret.pdf",
		DocumentData: []byte("secret"),
	}
	require.NoError(t, db.Create(doc).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/12/documents/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestGetDocument_InvalidIdentifier(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/abc/documents/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid identifiers")
}

func TestGetDocument_StoreFailure(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	// 关闭底层连接模拟存储不可用
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/11/documents/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error fetching document", w.Body.String())
}

func TestGetDocument_EmptyBlob(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := &models.Document{
		AssetID:      2,
		DocumentName: "empty.txt",
	}
	require.NoError(t, db.Create(doc).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/2/documents/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, w.Body.Len())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
}
