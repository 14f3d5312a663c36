// Package stock 资产出入库记录接口。
package stock

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/teolier/asset-office/api/common"
	"github.com/teolier/asset-office/api/middleware"
	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/stock"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler 出入库处理器
type Handler struct {
	repo *stock.Repository
}

// NewHandler 创建出入库处理器
func NewHandler(repo *stock.Repository) *Handler {
	return &Handler{repo: repo}
}

type createEntryRequest struct {
	AssetID   uint   `json:"asset_id" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=in out"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Location  string `json:"location"`
	Note      string `json:"note"`
	EntryDate string `json:"entry_date"` // RFC3339，缺省为当前时间
}

// CreateEntry 创建出入库记录
// POST /api/v1/stock
func (h *Handler) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entryDate := time.Now()
	if req.EntryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EntryDate)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "entry_date must be RFC3339")
			return
		}
		entryDate = parsed
	}

	userID, _ := middleware.CurrentUserID(c)

	entry := &models.StockEntry{
		AssetID:   req.AssetID,
		Kind:      models.StockEntryKind(req.Kind),
		Quantity:  req.Quantity,
		Location:  req.Location,
		Note:      req.Note,
		EntryDate: entryDate,
		CreatedBy: userID,
	}

	if err := h.repo.Create(c.Request.Context(), entry); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create stock entry")
		return
	}

	common.RespondCreated(c, entry)
}

// ListEntries 出入库记录列表，可按资产过滤
// GET /api/v1/stock?asset_id=1&page=1&page_size=20
func (h *Handler) ListEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var assetID uint
	if raw := c.Query("asset_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "Invalid asset_id")
			return
		}
		assetID = uint(parsed)
	}

	entries, total, err := h.repo.List(c.Request.Context(), assetID, page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list stock entries")
		return
	}

	common.RespondSuccess(c, gin.H{
		"entries":   entries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEntry 出入库记录详情
// GET /api/v1/stock/:entryId
func (h *Handler) GetEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("entryId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Stock entry not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch stock entry")
		return
	}

	common.RespondSuccess(c, entry)
}

type updateEntryRequest struct {
	Quantity  *int    `json:"quantity" binding:"omitempty,gt=0"`
	Location  *string `json:"location"`
	Note      *string `json:"note"`
	EntryDate string  `json:"entry_date"` // RFC3339
}

// UpdateEntry 更新出入库记录，仅允许修改数量、位置、备注和日期
// PUT /api/v1/stock/:entryId
func (h *Handler) UpdateEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("entryId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Stock entry not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch stock entry")
		return
	}

	if req.Quantity != nil {
		entry.Quantity = *req.Quantity
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	if req.EntryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EntryDate)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "entry_date must be RFC3339")
			return
		}
		entry.EntryDate = parsed
	}

	if err := h.repo.Update(c.Request.Context(), entry); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to update stock entry")
		return
	}

	common.RespondSuccess(c, entry)
}

// DeleteEntry 删除出入库记录
// DELETE /api/v1/stock/:entryId
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("entryId"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespondError(c, http.StatusNotFound, "Stock entry not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to fetch stock entry")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), uint(id)); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete stock entry")
		return
	}

	common.RespondSuccessMessage(c, "Stock entry deleted", nil)
}
