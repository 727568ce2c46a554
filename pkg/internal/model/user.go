package model

import (
	"time"
)

// User 用户模型，注册后不再修改.
type User struct {
	ID       uint   `gorm:"primaryKey"                json:"id"`
	Username string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	// PasswordDigest bcrypt 摘要，永不出现在模板或日志里
	PasswordDigest string    `gorm:"size:128;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
