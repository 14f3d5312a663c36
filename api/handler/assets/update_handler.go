package assets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/database/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateAssetRequest struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	PurchaseCost *int64  `json:"purchase_cost"`
}

// UpdateAsset 更新资产，只修改请求携带的字段
// PUT /api/v1/assets/:assetId
func (h *Handler) UpdateAsset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.SerialNumber != nil {
		asset.SerialNumber = *req.SerialNumber
	}
	if req.Category != nil {
		asset.Category = *req.Category
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Location != nil {
		asset.Location = *req.Location
	}
	if req.Status != nil {
		status := models.AssetStatus(*req.Status)
		if !isValidStatus(status) {
			common.RespondError(c, http.StatusBadRequest, "Invalid asset status")
			return
		}
		asset.Status = status
	}
	if req.PurchaseCost != nil {
		asset.PurchaseCost = *req.PurchaseCost
	}

	if err := h.repo.Update(c.Request.Context(), asset); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update asset")
		return
	}

	common.RespondSuccess(c, asset)
}

// DeleteAsset 删除资产
// DELETE /api/v1/assets/:assetId
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("assetId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	common.RespondSuccessMessage(c, "Asset deleted", nil)
}
