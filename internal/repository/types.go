package repository

import (
	"errors"

	"github.com/brandsite-api/internal/models"
)

// ErrDuplicate 唯一约束冲突（如 slug、邮箱重复）
var ErrDuplicate = errors.New("duplicate record")

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page     int
	PageSize int
	Status   models.PostStatus
	Search   string
	Tag      string
	OrderBy  string
}

// ContactMessageListFilter 查询联系留言列表的过滤条件
type ContactMessageListFilter struct {
	Page     int
	PageSize int
	Email    string
	Service  string
}

// WaitlistListFilter 查询候补名单列表的过滤条件
type WaitlistListFilter struct {
	Page     int
	PageSize int
	Search   string
}
