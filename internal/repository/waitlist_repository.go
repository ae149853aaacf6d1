package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brandsite-api/internal/models"

	"gorm.io/gorm"
)

// WaitlistRepository 候补名单数据访问接口
type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	GetByID(ctx context.Context, id uint) (*models.WaitlistEntry, error)
	GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	List(ctx context.Context, filter WaitlistListFilter) ([]models.WaitlistEntry, int64, error)
	MarkWelcomed(ctx context.Context, id uint, at time.Time) error
}

// GormWaitlistRepository GORM 实现
type GormWaitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository 创建候补名单仓库
func NewWaitlistRepository(db *gorm.DB) *GormWaitlistRepository {
	return &GormWaitlistRepository{db: db}
}

// Create 加入候补名单，邮箱重复时返回 ErrDuplicate
func (r *GormWaitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	return translateWriteError(r.db.WithContext(ctx).Create(entry).Error)
}

// GetByID 根据 ID 获取记录
func (r *GormWaitlistRepository) GetByID(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetByEmail 根据邮箱获取记录
func (r *GormWaitlistRepository) GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// List 候补名单列表
func (r *GormWaitlistRepository) List(ctx context.Context, filter WaitlistListFilter) ([]models.WaitlistEntry, int64, error) {
	entries := make([]models.WaitlistEntry, 0)
	query := r.db.WithContext(ctx).Model(&models.WaitlistEntry{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"email", "project_name", "project_description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// MarkWelcomed 标记欢迎邮件已发送
func (r *GormWaitlistRepository) MarkWelcomed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.WaitlistEntry{}).
		Where("id = ? AND welcomed_at IS NULL", id).
		Update("welcomed_at", at).Error
}
