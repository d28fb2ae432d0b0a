// Package model 包含了应用的数据模型定义。
package model

import "time"

// 用户角色。STUDENT 按序答题，ADMIN 额外可以查看和导出全量交互记录。
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User 代表一个已注册的学员，以邮箱作为唯一标识。
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:32;not null;default:STUDENT" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
