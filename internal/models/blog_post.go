package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandsite-api/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus 文章状态（封闭枚举）
type PostStatus string

const (
	PostStatusDraft     PostStatus = constants.PostStatusDraft
	PostStatusPublished PostStatus = constants.PostStatusPublished
	PostStatusArchived  PostStatus = constants.PostStatusArchived
)

// ParsePostStatus 解析状态字符串，只接受 draft/published/archived
func ParsePostStatus(raw string) (PostStatus, error) {
	status := PostStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid post status: %q", raw)
	}
	return status, nil
}

// Valid 判断状态是否合法
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	default:
		return false
	}
}

func (s PostStatus) String() string {
	return string(s)
}

// BlogPost 博客文章表
type BlogPost struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"` // 主键（UUID）
	Title string `gorm:"type:text;not null" json:"title"`       // 标题
	// 唯一标识；空 slug 的草稿不参与唯一约束
	Slug        string     `gorm:"type:varchar(255);not null;default:'';index:idx_blog_posts_slug_filled,unique,where:slug <> ''" json:"slug"`
	Excerpt     *string    `gorm:"type:text" json:"excerpt"`                                      // 摘要
	Content     string     `gorm:"type:text;not null;default:''" json:"content"`                  // 正文
	ImageURL    *string    `gorm:"type:text" json:"image_url"`                                    // 封面图
	Tags        Tags       `gorm:"type:text" json:"tags"`                                         // 有序标签
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 状态
	AuthorID    string     `gorm:"type:varchar(36);not null;index" json:"author_id"`              // 作者（编辑 ID）
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`                        // 更新时间
	PublishedAt *time.Time `gorm:"index" json:"published_at"`                                     // 首次发布时间
}

// TableName 指定表名
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate 首次持久化时分配 ID
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Tags == nil {
		p.Tags = Tags{}
	}
	return nil
}

// IsPublished 是否处于发布状态
func (p *BlogPost) IsPublished() bool {
	return p != nil && p.Status == PostStatusPublished
}
