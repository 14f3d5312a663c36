package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken 刷新令牌（服务端持久化，登出即撤销）
type RefreshToken struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// IsExpired 检查令牌是否过期
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
