// Package dashboard 后台概览统计接口。
package dashboard

import (
	"net/http"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/internal/dashboard"
	"github.com/gin-gonic/gin"
)

// Handler 统计处理器
type Handler struct {
	service *dashboard.Service
}

// NewHandler 创建统计处理器
func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{service: service}
}

// GetStats 获取概览统计
// GET /api/v1/dashboard/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to collect dashboard stats")
		return
	}

	common.RespondSuccess(c, stats)
}
