package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brandsite-api/internal/models"

	"gorm.io/gorm"
)

// ContactMessageRepository 联系留言数据访问接口
type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, filter ContactMessageListFilter) ([]models.ContactMessage, int64, error)
	MarkNotified(ctx context.Context, id uint, at time.Time) error
}

// GormContactMessageRepository GORM 实现
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository 创建联系留言仓库
func NewContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// Create 保存留言
func (r *GormContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByID 根据 ID 获取留言
func (r *GormContactMessageRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List 留言列表（按创建时间倒序）
func (r *GormContactMessageRepository) List(ctx context.Context, filter ContactMessageListFilter) ([]models.ContactMessage, int64, error) {
	messages := make([]models.ContactMessage, 0)
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where("email = ?", models.NormalizeEmail(email))
	}
	if service := strings.TrimSpace(filter.Service); service != "" {
		query = query.Where("service = ?", service)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkNotified 标记通知邮件已发送
func (r *GormContactMessageRepository) MarkNotified(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ? AND notified_at IS NULL", id).
		Update("notified_at", at).Error
}
