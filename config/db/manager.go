package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/configs"
	"gorm.io/gorm"
)

const (
	cacheKeyThumbnail = "settings:thumbnail"
	cacheKeyUpload    = "settings:upload"
)

// Manager 运行时配置管理器（配置存储在数据库，进程内缓存）
type Manager struct {
	db   *gorm.DB
	repo *configs.Repository

	cacheMutex sync.RWMutex
	localCache map[string]interface{}
}

// NewManager 创建配置管理器
func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:         db,
		repo:       configs.NewRepository(db),
		localCache: make(map[string]interface{}),
	}
}

// Initialize 初始化运行时配置，缺失时写入默认配置
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.ensureDefault(ctx, models.ConfigCategoryThumbnail, "Thumbnail Configuration", DefaultThumbnailSettings()); err != nil {
		return fmt.Errorf("failed to ensure thumbnail config: %w", err)
	}
	if err := m.ensureDefault(ctx, models.ConfigCategoryUpload, "Upload Configuration", DefaultUploadSettings()); err != nil {
		return fmt.Errorf("failed to ensure upload config: %w", err)
	}

	log.Println("[ConfigManager] Initialized successfully")
	return nil
}

// InvalidateCache 清空进程内缓存
func (m *Manager) InvalidateCache() {
	m.cacheMutex.Lock()
	defer m.cacheMutex.Unlock()
	m.localCache = make(map[string]interface{})
}

// ensureDefault 缺失时持久化默认配置
func (m *Manager) ensureDefault(ctx context.Context, category models.ConfigCategory, name string, settings interface{}) error {
	_, err := m.repo.GetDefaultByCategory(ctx, category)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := m.saveCategory(ctx, category, name, settings); err != nil {
		return err
	}

	log.Printf("[ConfigManager] Default %s config created", category)
	return nil
}

// loadCategory 读取分类默认配置并反序列化为 map
func (m *Manager) loadCategory(ctx context.Context, category models.ConfigCategory) (map[string]interface{}, error) {
	cfg, err := m.repo.GetDefaultByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(cfg.ConfigJSON), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s config JSON: %w", category, err)
	}
	return raw, nil
}

// saveCategory 保存分类默认配置
func (m *Manager) saveCategory(ctx context.Context, category models.ConfigCategory, name string, settings interface{}) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal %s settings: %w", category, err)
	}

	cfg := &models.SystemConfig{
		Category:    category,
		Name:        name,
		Key:         fmt.Sprintf("%s:default", category),
		IsDefault:   true,
		ConfigJSON:  string(payload),
		Description: fmt.Sprintf("Default %s settings", category),
	}
	return m.repo.Upsert(ctx, cfg)
}
