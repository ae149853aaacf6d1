package admin

import (
	"errors"

	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

var editorErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Msg: "invalid email address"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Msg: "password does not meet policy"},
	{Target: service.ErrInvalidRole, Code: response.CodeBadRequest, Msg: "invalid role"},
	{Target: service.ErrEditorExists, Code: response.CodeConflict, Msg: "editor email already registered"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Msg: "cannot delete the signed-in editor"},
}

// GetEditors 编辑账号列表
func (h *Handler) GetEditors(c *gin.Context) {
	editors, err := h.AuthService.ListEditors(c.Request.Context())
	if err != nil {
		respondMappedError(c, err, editorErrorRules, response.CodeInternal, "failed to load editors")
		return
	}
	response.Success(c, editors)
}

// CreateEditorRequest 新建编辑请求
type CreateEditorRequest struct {
	Email       string   `json:"email" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}

// CreateEditor 新建编辑账号
func (h *Handler) CreateEditor(c *gin.Context) {
	var req CreateEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	editor, err := h.AuthService.CreateEditor(c.Request.Context(), service.CreateEditorInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Roles:       req.Roles,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondMappedError(c, err, editorErrorRules, response.CodeInternal, "failed to create editor")
		return
	}
	response.Success(c, editor)
}

// AssignRolesRequest 设置角色请求
type AssignRolesRequest struct {
	Roles []string `json:"roles"`
}

// AssignEditorRoles 覆盖设置编辑角色
func (h *Handler) AssignEditorRoles(c *gin.Context) {
	var req AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	roles, err := h.AuthService.AssignRoles(c.Request.Context(), c.Param("id"), req.Roles)
	if err != nil {
		respondMappedError(c, err, editorErrorRules, response.CodeInternal, "failed to assign roles")
		return
	}
	requestLog(c).Infow("editor_roles_assigned", "editor_id", c.Param("id"), "roles", roles)
	response.Success(c, gin.H{"roles": roles})
}

// DeleteEditor 删除编辑账号
func (h *Handler) DeleteEditor(c *gin.Context) {
	actorID, ok := getEditorID(c)
	if !ok {
		return
	}
	if err := h.AuthService.DeleteEditor(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondMappedError(c, err, editorErrorRules, response.CodeInternal, "failed to delete editor")
		return
	}
	response.Success(c, nil)
}

var emailErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Msg: "invalid email address"},
	{Target: service.ErrEmailServiceDisabled, Code: response.CodeBadRequest, Msg: "email service disabled"},
	{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeBadRequest, Msg: "email service not configured"},
	{Target: service.ErrEmailRecipientRejected, Code: response.CodeBadRequest, Msg: "email recipient rejected"},
}
