package users

import (
	"context"
	"errors"
	"log"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/utils/crypto"
	"gorm.io/gorm"
)

// Repository 用户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的用户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 保存用户
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 通过ID获取用户
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 通过用户名获取用户
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List 分页获取用户列表
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	db := r.db.WithContext(ctx).Model(&models.User{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Order("id asc").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, total, err
}

// Update 更新用户
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete 删除用户
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateDefaultAdminUser 创建默认管理员用户（首次启动）
func (r *Repository) CreateDefaultAdminUser() {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password, err := crypto.GenerateFromPassword("admin123")
	if err != nil {
		log.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := &models.User{
		Username: "admin",
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := r.db.Create(admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Failed to create default admin user: %v", err)
		}
		return
	}

	log.Println("Created default admin user 'admin' (change the password immediately)")
}
