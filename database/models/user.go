package models

import "gorm.io/gorm"

// 用户角色常量
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"` // argon2id 哈希
	Role     string `gorm:"default:'staff';not null" json:"role"`
	Email    string `json:"email"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
