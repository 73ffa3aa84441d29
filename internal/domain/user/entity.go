package user

import (
	"time"
)

// 角色
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User 用户实体
// 设计说明：
// 1. Password存储bcrypt哈希值
// 2. Role决定能否访问管理后台（只有Admin可以管理图书）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建用户（工厂方法）
func NewUser(email, hashedPassword, nickname, role string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
