package assets

import (
	"net/http"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/database/models"
	"github.com/gin-gonic/gin"
)

type createAssetRequest struct {
	Name         string `json:"name" binding:"required"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	PurchaseCost int64  `json:"purchase_cost"`
}

// CreateAsset 创建资产
// POST /api/v1/assets
func (h *Handler) CreateAsset(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.AssetStatus(req.Status)
	if req.Status == "" {
		status = models.AssetStatusActive
	}
	if !isValidStatus(status) {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset status")
		return
	}

	asset := &models.Asset{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Category:     req.Category,
		Description:  req.Description,
		Location:     req.Location,
		Status:       status,
		PurchaseCost: req.PurchaseCost,
	}

	if err := h.repo.Create(c.Request.Context(), asset); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	common.RespondCreated(c, asset)
}

func isValidStatus(status models.AssetStatus) bool {
	switch status {
	case models.AssetStatusActive, models.AssetStatusInStock,
		models.AssetStatusMaintenance, models.AssetStatusRetired:
		return true
	}
	return false
}
