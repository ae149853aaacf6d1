package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brandsite-api/internal/authz"
	"github.com/brandsite-api/internal/cache"
	"github.com/brandsite-api/internal/config"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 编辑认证服务
type AuthService struct {
	cfg        *config.Config
	editorRepo repository.EditorRepository
	authz      *authz.Service
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, editorRepo repository.EditorRepository, authzService *authz.Service) *AuthService {
	return &AuthService{
		cfg:        cfg,
		editorRepo: editorRepo,
		authz:      authzService,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	EditorID     string `json:"editor_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(editor *models.Editor) (string, time.Time, error) {
	now := time.Now()
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		EditorID:     editor.ID,
		Email:        editor.Email,
		TokenVersion: editor.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   editor.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.EditorID != "" {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ResolveAuthState 获取编辑鉴权快照，缓存未命中时回源数据库并回填
func (s *AuthService) ResolveAuthState(ctx context.Context, editorID string) (*cache.EditorAuthState, error) {
	state, hit, err := cache.GetEditorAuthState(ctx, editorID)
	if err != nil {
		logger.Warnw("auth_state_cache_get_failed", "editor_id", editorID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}

	editor, err := s.editorRepo.GetByID(ctx, editorID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, ErrNotFound
	}
	state = cache.BuildEditorAuthState(editor)
	if err := cache.SetEditorAuthState(ctx, state); err != nil {
		logger.Warnw("auth_state_cache_set_failed", "editor_id", editorID, "error", err)
	}
	return state, nil
}

// Login 编辑登录
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Editor, string, time.Time, error) {
	editor, err := s.editorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if editor == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(editor.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(editor)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	editor.LastLoginAt = &now
	if err := s.editorRepo.Update(ctx, editor); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetEditorAuthState(ctx, cache.BuildEditorAuthState(editor))

	return editor, token, expiresAt, nil
}

// GetEditor 获取编辑资料
func (s *AuthService) GetEditor(ctx context.Context, editorID string) (*models.Editor, error) {
	editor, err := s.editorRepo.GetByID(ctx, editorID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, ErrNotFound
	}
	return editor, nil
}

// ChangePassword 修改编辑密码，并使已签发的 Token 全部失效
func (s *AuthService) ChangePassword(ctx context.Context, editorID, oldPassword, newPassword string) error {
	editor, err := s.editorRepo.GetByID(ctx, editorID)
	if err != nil {
		return err
	}
	if editor == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(editor.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	editor.PasswordHash = hashedPassword
	now := time.Now()
	editor.TokenVersion++
	editor.TokenInvalidBefore = &now
	if err := s.editorRepo.Update(ctx, editor); err != nil {
		return err
	}
	_ = cache.SetEditorAuthState(ctx, cache.BuildEditorAuthState(editor))
	return nil
}

// CreateEditorInput 新建编辑输入
type CreateEditorInput struct {
	Email       string
	DisplayName string
	Password    string
	Roles       []string
}

// EditorWithRoles 编辑及其角色
type EditorWithRoles struct {
	models.Editor
	Roles []string `json:"roles"`
}

// ListEditors 编辑列表（附带角色）
func (s *AuthService) ListEditors(ctx context.Context) ([]EditorWithRoles, error) {
	editors, err := s.editorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]EditorWithRoles, 0, len(editors))
	for _, editor := range editors {
		item := EditorWithRoles{Editor: editor, Roles: []string{}}
		if s.authz != nil {
			roles, err := s.authz.GetEditorRoles(editor.ID)
			if err != nil {
				return nil, err
			}
			item.Roles = roles
		}
		result = append(result, item)
	}
	return result, nil
}

// CreateEditor 新建编辑账号并分配角色
func (s *AuthService) CreateEditor(ctx context.Context, input CreateEditorInput) (*EditorWithRoles, error) {
	email := models.NormalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	roles, err := normalizeEditorRoles(input.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	editor := &models.Editor{
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
	}
	if err := s.editorRepo.Create(ctx, editor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEditorExists
		}
		return nil, err
	}
	if s.authz != nil {
		if err := s.authz.SetEditorRoles(editor.ID, roles); err != nil {
			return nil, err
		}
	}
	logger.Infow("editor_created", "editor_id", editor.ID, "email", editor.Email, "roles", roles)
	return &EditorWithRoles{Editor: *editor, Roles: roles}, nil
}

// AssignRoles 覆盖设置编辑角色
func (s *AuthService) AssignRoles(ctx context.Context, editorID string, roles []string) ([]string, error) {
	editor, err := s.editorRepo.GetByID(ctx, editorID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, ErrNotFound
	}
	normalized, err := normalizeEditorRoles(roles)
	if err != nil {
		return nil, err
	}
	if s.authz == nil {
		return nil, errors.New("authz service unavailable")
	}
	if err := s.authz.SetEditorRoles(editor.ID, normalized); err != nil {
		return nil, err
	}
	return s.authz.GetEditorRoles(editor.ID)
}

// DeleteEditor 删除编辑并吊销其 Token
func (s *AuthService) DeleteEditor(ctx context.Context, actorID, editorID string) error {
	if actorID == editorID {
		return ErrCannotDeleteSelf
	}
	editor, err := s.editorRepo.GetByID(ctx, editorID)
	if err != nil {
		return err
	}
	if editor == nil {
		return ErrNotFound
	}
	if err := s.editorRepo.Delete(ctx, editorID); err != nil {
		return err
	}
	if s.authz != nil {
		if err := s.authz.SetEditorRoles(editorID, nil); err != nil {
			return err
		}
	}
	_ = cache.DelEditorAuthState(ctx, editorID)
	return nil
}

func normalizeEditorRoles(roles []string) ([]string, error) {
	normalized := make([]string, 0, len(roles))
	seen := map[string]struct{}{}
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if !authz.IsBuiltinRole(role) {
			return nil, ErrInvalidRole
		}
		full, err := authz.NormalizeRole(role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		if _, ok := seen[full]; ok {
			continue
		}
		seen[full] = struct{}{}
		normalized = append(normalized, full)
	}
	return normalized, nil
}
