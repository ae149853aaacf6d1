package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Editor 博客编辑账号表
type Editor struct {
	ID                 string         `gorm:"type:varchar(36);primaryKey" json:"id"`        // 主键（UUID）
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`            // 登录邮箱
	DisplayName        string         `gorm:"type:varchar(100)" json:"display_name"`        // 展示名称
	PasswordHash       string         `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // 该时间点前签发的 Token 失效
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // 是否超级编辑（免权限校验）
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Editor) TableName() string {
	return "editors"
}

// BeforeCreate 分配 ID 并归一化邮箱
func (e *Editor) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(e.ID) == "" {
		e.ID = uuid.NewString()
	}
	e.Email = NormalizeEmail(e.Email)
	return nil
}

// NormalizeEmail 邮箱统一小写去空白
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
