package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/tokens"
	"github.com/teolier/asset-office/database/repo/users"
	"github.com/teolier/asset-office/internal/auth"
	"github.com/teolier/asset-office/utils/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	hash, err := crypto.GenerateFromPassword("correct-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "alice",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error)

	jwtService := auth.NewJWTServiceWithConfig(auth.TokenConfig{
		Secret:           []byte("0123456789abcdef0123456789abcdef"),
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	})
	loginService := auth.NewLoginService(users.NewRepository(db), tokens.NewRepository(db), jwtService)
	handler := NewLoginHandler(loginService)

	router := gin.New()
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", handler.LoginHandlerFunc)
		authGroup.POST("/refresh", handler.RefreshTokenHandlerFunc)
		authGroup.POST("/logout", handler.LogoutHandlerFunc)
	}
	return router, db
}

func postLogin(router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			return cookie
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestLogin_Success(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postLogin(router, "alice", "correct-password")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			AccessToken string `json:"access_token"`
			Username    string `json:"username"`
			Role        string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, resp.Data.AccessToken, "Bearer ")
	assert.Equal(t, "alice", resp.Data.Username)
	assert.Equal(t, models.RoleAdmin, resp.Data.Role)

	cookie := refreshCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/auth/", cookie.Path)
	assert.NotEmpty(t, cookie.Value)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postLogin(router, "alice", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_UnknownUser(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postLogin(router, "nobody", "whatever-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postLogin(router, "alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// 刷新成功后旧 token 作废（服务端轮换）
func TestRefreshToken_Rotation(t *testing.T) {
	router, _ := setupAuthRouter(t)

	loginResp := postLogin(router, "alice", "correct-password")
	require.Equal(t, http.StatusOK, loginResp.Code)
	oldCookie := refreshCookie(t, loginResp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(oldCookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	newCookie := refreshCookie(t, w)
	assert.NotEqual(t, oldCookie.Value, newCookie.Value)

	// 旧 token 再次使用必须被拒绝
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req2.AddCookie(oldCookie)
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestRefreshToken_MissingCookie(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	router, db := setupAuthRouter(t)

	loginResp := postLogin(router, "alice", "correct-password")
	cookie := refreshCookie(t, loginResp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("token = ?", cookie.Value).Count(&count).Error)
	assert.Zero(t, count)
}
