package repository

import (
	"context"
	"errors"

	"github.com/brandsite-api/internal/models"

	"gorm.io/gorm"
)

// EditorRepository 编辑账号数据访问接口
type EditorRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Editor, error)
	GetByID(ctx context.Context, id string) (*models.Editor, error)
	List(ctx context.Context) ([]models.Editor, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, editor *models.Editor) error
	Update(ctx context.Context, editor *models.Editor) error
	Delete(ctx context.Context, id string) error
}

// GormEditorRepository GORM 实现
type GormEditorRepository struct {
	db *gorm.DB
}

// NewEditorRepository 创建编辑仓库
func NewEditorRepository(db *gorm.DB) *GormEditorRepository {
	return &GormEditorRepository{db: db}
}

// GetByEmail 根据邮箱获取编辑
func (r *GormEditorRepository) GetByEmail(ctx context.Context, email string) (*models.Editor, error) {
	var editor models.Editor
	if err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&editor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &editor, nil
}

// GetByID 根据 ID 获取编辑
func (r *GormEditorRepository) GetByID(ctx context.Context, id string) (*models.Editor, error) {
	var editor models.Editor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&editor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &editor, nil
}

// List 获取编辑列表
func (r *GormEditorRepository) List(ctx context.Context) ([]models.Editor, error) {
	editors := make([]models.Editor, 0)
	err := r.db.WithContext(ctx).
		Select("id", "email", "display_name", "is_super", "last_login_at", "created_at").
		Order("created_at ASC").
		Find(&editors).Error
	if err != nil {
		return nil, err
	}
	return editors, nil
}

// Count 统计编辑数量
func (r *GormEditorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Editor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建编辑
func (r *GormEditorRepository) Create(ctx context.Context, editor *models.Editor) error {
	return translateWriteError(r.db.WithContext(ctx).Create(editor).Error)
}

// Update 更新编辑
func (r *GormEditorRepository) Update(ctx context.Context, editor *models.Editor) error {
	return translateWriteError(r.db.WithContext(ctx).Save(editor).Error)
}

// Delete 删除编辑（软删除）
func (r *GormEditorRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Editor{}).Error
}
