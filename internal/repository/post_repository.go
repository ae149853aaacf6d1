package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/brandsite-api/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(ctx context.Context, filter PostListFilter) ([]models.BlogPost, int64, error)
	GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) (bool, error)
	CountBySlug(ctx context.Context, slug string, excludeID string) (int64, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表
func (r *GormPostRepository) List(ctx context.Context, filter PostListFilter) ([]models.BlogPost, int64, error) {
	posts := make([]models.BlogPost, 0)
	query := r.db.WithContext(ctx).Model(&models.BlogPost{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		condition, arg := jsonArrayContainsCondition(r.db, "tags", tag)
		query = query.Where(condition, arg)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"title", "slug", "excerpt"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetBySlug 根据 slug 获取文章，空 slug 不匹配任何文章
func (r *GormPostRepository) GetBySlug(ctx context.Context, slug string, onlyPublished bool) (*models.BlogPost, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("status = ?", models.PostStatusPublished)
	}

	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID 根据 ID 获取文章
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return translateWriteError(r.db.WithContext(ctx).Create(post).Error)
}

// Update 更新文章（整行覆盖，后写入者生效）
func (r *GormPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	return translateWriteError(r.db.WithContext(ctx).Save(post).Error)
}

// Delete 物理删除文章，返回是否有记录被删除
func (r *GormPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountBySlug 统计 slug 数量
func (r *GormPostRepository) CountBySlug(ctx context.Context, slug string, excludeID string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
