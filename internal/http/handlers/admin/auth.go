package admin

import (
	"errors"
	"time"

	"github.com/brandsite-api/internal/constants"
	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	Editor    map[string]interface{} `json:"editor"`
	ExpiresAt string                 `json:"expires_at"`
}

// EditorLogin 编辑登录
func (h *Handler) EditorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	editor, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}
	requestLog(c).Infow("editor_login", "editor_id", editor.ID)
	response.Success(c, LoginResponse{
		Token: token,
		Editor: map[string]interface{}{
			"id":           editor.ID,
			"email":        editor.Email,
			"display_name": editor.DisplayName,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetCurrentEditor 当前登录编辑信息
func (h *Handler) GetCurrentEditor(c *gin.Context) {
	editorID, ok := getEditorID(c)
	if !ok {
		return
	}
	editor, err := h.AuthService.GetEditor(c.Request.Context(), editorID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "editor not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load editor", err)
		return
	}
	roles, err := h.AuthzService.GetEditorRoles(editor.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load editor roles", err)
		return
	}
	response.Success(c, gin.H{
		"id":            editor.ID,
		"email":         editor.Email,
		"display_name":  editor.DisplayName,
		"is_super":      editor.IsSuper,
		"roles":         roles,
		"last_login_at": editor.LastLoginAt,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateEditorPassword 修改当前编辑密码
func (h *Handler) UpdateEditorPassword(c *gin.Context) {
	editorID, ok := getEditorID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), editorID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "editor not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update password", err)
		return
	}

	response.Success(c, nil)
}
