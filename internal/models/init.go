package models

import (
	"errors"
	"strings"

	"github.com/brandsite-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultEditorEmail    = "admin@example.com"
	defaultEditorPassword = "admin123"
)

// InitDefaultEditor 初始化默认编辑账号（仅在没有任何编辑时创建）
func InitDefaultEditor(email, password string) (*Editor, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var count int64
	if err := DB.Model(&Editor{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	email = NormalizeEmail(email)
	if email == "" {
		email = defaultEditorEmail
	}
	if strings.TrimSpace(password) == "" {
		password = defaultEditorPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	editor := Editor{
		Email:        email,
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		IsSuper:      true,
	}
	if err := DB.Create(&editor).Error; err != nil {
		return nil, err
	}

	if password == defaultEditorPassword {
		logger.Warnw("default_editor_created_with_default_password", "email", email)
		logger.Warnw("default_editor_password_change_required", "email", email)
	} else {
		logger.Warnw("default_editor_created", "email", email, "password_hidden", true)
	}
	return &editor, nil
}
