package dashboard

import (
	"context"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/dashboard"
	"github.com/teolier/asset-office/utils/format"
	"golang.org/x/sync/errgroup"
)

// StatsRepository 统计仓库接口
type StatsRepository interface {
	CountAssets(ctx context.Context) (int64, error)
	CountAssetsByStatus(ctx context.Context, status models.AssetStatus) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	DocumentStats(ctx context.Context) (*dashboard.AttachmentStats, error)
	ImageStats(ctx context.Context) (*dashboard.AttachmentStats, error)
	StockBalance(ctx context.Context) (int64, error)
}

// Service Dashboard 统计服务
type Service struct {
	repo StatsRepository
}

// NewService 创建新的 Dashboard 统计服务
func NewService(repo StatsRepository) *Service {
	return &Service{repo: repo}
}

// StatsResponse Dashboard 统计响应
type StatsResponse struct {
	Assets      AssetStats      `json:"assets"`
	Attachments AttachmentStats `json:"attachments"`
	Users       CountStats      `json:"users"`
	Stock       StockStats      `json:"stock"`
}

// AssetStats 资产统计
type AssetStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	InStock     int64 `json:"in_stock"`
	Maintenance int64 `json:"maintenance"`
	Retired     int64 `json:"retired"`
}

// AttachmentStats 附件统计
type AttachmentStats struct {
	Documents      int64  `json:"documents"`
	Images         int64  `json:"images"`
	TotalSize      int64  `json:"total_size"`
	TotalSizeHuman string `json:"total_size_human"`
}

// CountStats 数量统计
type CountStats struct {
	Total int64 `json:"total"`
}

// StockStats 库存统计
type StockStats struct {
	Balance int64 `json:"balance"`
}

// GetStats 并发收集 Dashboard 统计数据
func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	var (
		response StatsResponse
		docStats *dashboard.AttachmentStats
		imgStats *dashboard.AttachmentStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.repo.CountAssets(gctx)
		response.Assets.Total = total
		return err
	})

	statusTargets := []struct {
		status models.AssetStatus
		dest   *int64
	}{
		{models.AssetStatusActive, &response.Assets.Active},
		{models.AssetStatusInStock, &response.Assets.InStock},
		{models.AssetStatusMaintenance, &response.Assets.Maintenance},
		{models.AssetStatusRetired, &response.Assets.Retired},
	}
	for _, target := range statusTargets {
		target := target
		g.Go(func() error {
			count, err := s.repo.CountAssetsByStatus(gctx, target.status)
			*target.dest = count
			return err
		})
	}

	g.Go(func() error {
		count, err := s.repo.CountUsers(gctx)
		response.Users.Total = count
		return err
	})

	g.Go(func() error {
		stats, err := s.repo.DocumentStats(gctx)
		docStats = stats
		return err
	})

	g.Go(func() error {
		stats, err := s.repo.ImageStats(gctx)
		imgStats = stats
		return err
	})

	g.Go(func() error {
		balance, err := s.repo.StockBalance(gctx)
		response.Stock.Balance = balance
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	response.Attachments = AttachmentStats{
		Documents: docStats.Count,
		Images:    imgStats.Count,
		TotalSize: docStats.Bytes + imgStats.Bytes,
	}
	response.Attachments.TotalSizeHuman = format.HumanReadableSize(response.Attachments.TotalSize)

	return &response, nil
}
