package user

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 用户不存在
var ErrNotFound = errors.New("user not found")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型
type User struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"size:64;not null" json:"first_name"`
	LastName        string    `gorm:"size:64;not null" json:"last_name"`
	Email           string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"` // 已加密密码
	Salt            string    `gorm:"size:64" json:"-"`
	Role            string    `gorm:"size:16;index;default:user" json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Repository 用户仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	ListAll(ctx context.Context) ([]*User, error)
}

// ProfileTabs 返回个人中心按角色可见的标签页。
// 普通用户只有前三个，admin 额外获得用户管理与商品管理。
func ProfileTabs(role string) []string {
	tabs := []string{"profile", "orders", "settings"}
	if role == RoleAdmin {
		tabs = append(tabs, "users", "products")
	}
	return tabs
}
