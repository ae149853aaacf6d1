package public

import (
	"github.com/brandsite-api/internal/constants"
	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name           string                              `json:"name"`
	Organization   string                              `json:"organization"`
	Email          string                              `json:"email"`
	Phone          string                              `json:"phone"`
	Service        string                              `json:"service"`
	Message        string                              `json:"message"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneContact, req.CaptchaPayload) {
		return
	}
	message, err := h.ContactService.Submit(c.Request.Context(), service.ContactInput{
		Name:         req.Name,
		Organization: req.Organization,
		Email:        req.Email,
		Phone:        req.Phone,
		Service:      req.Service,
		Message:      req.Message,
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		respondMappedError(c, err, nil, response.CodeInternal, "failed to send message, please try again")
		return
	}
	response.SuccessWithMsg(c, "message sent", gin.H{"id": message.ID})
}

// WaitlistRequest 候补名单请求
type WaitlistRequest struct {
	Email              string                              `json:"email"`
	Twitter            string                              `json:"twitter"`
	Telegram           string                              `json:"telegram"`
	ProjectName        string                              `json:"project_name"`
	UseCases           []string                            `json:"use_cases"`
	OtherUseCase       string                              `json:"other_use_case"`
	ProjectDescription string                              `json:"project_description"`
	CaptchaPayload     handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// JoinWaitlist 加入候补名单
func (h *Handler) JoinWaitlist(c *gin.Context) {
	var req WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneWaitlist, req.CaptchaPayload) {
		return
	}
	entry, err := h.WaitlistService.Join(c.Request.Context(), service.WaitlistInput{
		Email:              req.Email,
		Twitter:            req.Twitter,
		Telegram:           req.Telegram,
		ProjectName:        req.ProjectName,
		UseCases:           req.UseCases,
		OtherUseCase:       req.OtherUseCase,
		ProjectDescription: req.ProjectDescription,
		ClientIP:           c.ClientIP(),
	})
	if err != nil {
		respondMappedError(c, err, waitlistErrorRules, response.CodeInternal, "failed to join waitlist, please try again")
		return
	}
	response.SuccessWithMsg(c, "you're on the list", gin.H{"id": entry.ID})
}

// GetFormOptions 表单可选项与验证码配置
func (h *Handler) GetFormOptions(c *gin.Context) {
	var captcha interface{}
	if h.CaptchaService != nil {
		captcha = h.CaptchaService.PublicSetting()
	}
	response.Success(c, gin.H{
		"contact_services":   constants.ContactServiceOptions,
		"waitlist_use_cases": constants.WaitlistUseCaseOptions,
		"captcha":            captcha,
	})
}
