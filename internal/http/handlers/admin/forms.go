package admin

import (
	"strings"

	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetContactMessages 联系留言列表
func (h *Handler) GetContactMessages(c *gin.Context) {
	page, pageSize := parsePagination(c)
	messages, total, err := h.ContactService.List(c.Request.Context(), editorSession(c), service.ContactQuery{
		Page:     page,
		PageSize: pageSize,
		Email:    strings.TrimSpace(c.Query("email")),
		Service:  strings.TrimSpace(c.Query("service")),
	})
	if err != nil {
		respondMappedError(c, err, nil, response.CodeInternal, "failed to load contact messages")
		return
	}
	response.SuccessWithPage(c, messages, response.BuildPagination(page, pageSize, total))
}

// GetWaitlistEntries 候补名单列表
func (h *Handler) GetWaitlistEntries(c *gin.Context) {
	page, pageSize := parsePagination(c)
	entries, total, err := h.WaitlistService.List(c.Request.Context(), editorSession(c), service.WaitlistQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondMappedError(c, err, nil, response.CodeInternal, "failed to load waitlist entries")
		return
	}
	response.SuccessWithPage(c, entries, response.BuildPagination(page, pageSize, total))
}

// SendTestEmailRequest 测试邮件请求
type SendTestEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendTestEmail 发送测试邮件，用于确认 SMTP 配置
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.EmailService.SendCustomEmail(req.To, req.Subject, req.Body); err != nil {
		respondMappedError(c, err, emailErrorRules, response.CodeInternal, "failed to send email")
		return
	}
	response.Success(c, nil)
}
