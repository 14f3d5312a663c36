// Package users 后台用户管理接口。
package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/api/middleware"
	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/users"
	cryptoutils "github.com/teolier/asset-office/utils/crypto"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 用户处理器
type Handler struct {
	repo *users.Repository
}

// NewHandler 创建用户处理器
func NewHandler(repo *users.Repository) *Handler {
	return &Handler{repo: repo}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=staff admin"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// CreateUser 创建用户（仅管理员）
// POST /api/v1/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := cryptoutils.GenerateFromPassword(req.Password)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Role:     role,
		Email:    req.Email,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		common.RespondError(c, http.StatusConflict, "Failed to create user, username may already exist")
		return
	}

	common.RespondCreated(c, user)
}

// ListUsers 用户列表（仅管理员）
// GET /api/v1/users
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	list, total, err := h.repo.List(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	common.RespondSuccess(c, gin.H{
		"users":     list,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetUser 用户详情（仅管理员）
// GET /api/v1/users/:userId
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	common.RespondSuccess(c, user)
}

type updateUserRequest struct {
	Role     string `json:"role" binding:"omitempty,oneof=staff admin"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// UpdateUser 更新用户角色、邮箱或重置密码（仅管理员）
// PUT /api/v1/users/:userId
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	// 不允许管理员降级自己的角色，避免锁死后台
	currentID, _ := middleware.CurrentUserID(c)
	if req.Role != "" && req.Role != models.RoleAdmin && uint(id) == currentID {
		common.RespondError(c, http.StatusBadRequest, "Cannot demote the current user")
		return
	}

	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := cryptoutils.GenerateFromPassword(req.Password)
		if err != nil {
			common.RespondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hash
	}

	if err := h.repo.Update(c.Request.Context(), user); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	common.RespondSuccess(c, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword 修改当前用户密码
// POST /api/v1/users/password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		common.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	match, err := cryptoutils.ComparePasswordAndHash(req.OldPassword, user.Password)
	if err != nil || !match {
		common.RespondError(c, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	hash, err := cryptoutils.GenerateFromPassword(req.NewPassword)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user.Password = hash
	if err := h.repo.Update(c.Request.Context(), user); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	common.RespondSuccessMessage(c, "Password updated", nil)
}

// DeleteUser 删除用户（仅管理员）
// DELETE /api/v1/users/:userId
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	currentID, _ := middleware.CurrentUserID(c)
	if uint(id) == currentID {
		common.RespondError(c, http.StatusBadRequest, "Cannot delete the current user")
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	common.RespondSuccessMessage(c, "User deleted", nil)
}
