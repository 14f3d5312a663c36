package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teolier/asset-office/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest() (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTServiceWithConfig(auth.TokenConfig{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		ExpiresIn: time.Minute,
	})

	router := gin.New()
	router.GET("/protected", JWTAuth(jwtService), func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  userID,
			"username": CurrentUsername(c),
			"role":     c.GetString(ContextRoleKey),
		})
	})
	return router, jwtService
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router, jwtService := setupAuthTest()

	token, _, err := jwtService.GenerateAccessToken("alice", 42, "admin")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router, _ := setupAuthTest()

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router, _ := setupAuthTest()

	w := doRequest(router, "Bearer")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJWTAuth_UnsupportedScheme(t *testing.T) {
	router, _ := setupAuthTest()

	w := doRequest(router, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router, _ := setupAuthTest()

	w := doRequest(router, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// 空角色回退为 staff
func TestJWTAuth_DefaultRole(t *testing.T) {
	router, jwtService := setupAuthTest()

	token, _, err := jwtService.GenerateAccessToken("bob", 7, "")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin-only", func(c *gin.Context) {
		c.Set(ContextRoleKey, "staff")
	}, RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/staff-ok", func(c *gin.Context) {
		c.Set(ContextRoleKey, "staff")
	}, RequireRole("admin", "staff"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
