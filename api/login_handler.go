package api

import (
	"net/http"
	"time"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/config"
	"github.com/teolier/asset-office/internal/auth"

	"github.com/gin-gonic/gin"
)

// LoginHandler 登录处理器
type LoginHandler struct {
	loginService *auth.LoginService
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(loginService *auth.LoginService) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
	}
}

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
	Username          string `json:"username,omitempty"`
	Role              string `json:"role,omitempty"`
}

// LoginHandlerFunc user login
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	if h.loginService == nil {
		common.RespondError(c, http.StatusInternalServerError, "Login service not initialized")
		return
	}

	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err.Error() == "invalid credentials" {
			common.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	refreshTokenMaxAge := int(time.Until(result.RefreshTokenExpiry).Seconds())
	setAuthCookie(c, result.RefreshToken, refreshTokenMaxAge)

	common.RespondSuccessMessage(c, "Login successful", loginResponse{
		AccessToken:       "Bearer " + result.AccessToken,
		AccessTokenExpiry: result.AccessTokenExpiry.Unix(),
		Username:          result.User.Username,
		Role:              result.User.Role,
	})
}

// RefreshTokenHandlerFunc Refresh token authentication
func (h *LoginHandler) RefreshTokenHandlerFunc(c *gin.Context) {
	if h.loginService == nil {
		common.RespondError(c, http.StatusInternalServerError, "Login service not initialized")
		return
	}

	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	result, err := h.loginService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	newRefreshTokenMaxAge := int(time.Until(result.RefreshTokenExpiry).Seconds())
	setAuthCookie(c, result.RefreshToken, newRefreshTokenMaxAge)

	common.RespondSuccessMessage(c, "Refresh token successful", loginResponse{
		AccessToken:       "Bearer " + result.AccessToken,
		AccessTokenExpiry: result.AccessTokenExpiry.Unix(),
	})
}

// LogoutHandlerFunc user logout
func (h *LoginHandler) LogoutHandlerFunc(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		common.RespondSuccessMessage(c, "Already logged out or session invalid", nil)
		return
	}

	if h.loginService != nil {
		_ = h.loginService.Logout(c.Request.Context(), refreshToken)
	}

	clearAuthCookie(c)

	common.RespondSuccessMessage(c, "Logout successful", nil)
}

// setAuthCookie 设置 refresh_token 的 HttpOnly cookie
func setAuthCookie(c *gin.Context, refreshToken string, maxAge int) {
	cookie := http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		MaxAge:   maxAge,
		Path:     "/api/auth/",
		Domain:   "",
		Secure:   config.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(c.Writer, &cookie)
}

// clearAuthCookie 清除认证 cookie
func clearAuthCookie(c *gin.Context) {
	cfg := config.Get()
	c.SetCookie("refresh_token", "", -1, "/api/auth/", cfg.ServerDomain, false, true)
}
