package shared

import (
	"errors"
	"strings"

	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaPayloadRequest 验证码请求载荷。
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// ToServicePayload 转换为 service 层验证码载荷。
func (r CaptchaPayloadRequest) ToServicePayload() service.CaptchaVerifyPayload {
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(r.CaptchaID),
		CaptchaCode: strings.TrimSpace(r.CaptchaCode),
	}
}

// VerifyCaptcha 校验场景验证码，失败时写入响应并返回 false。
func VerifyCaptcha(c *gin.Context, captchaService *service.CaptchaService, scene string, payload CaptchaPayloadRequest) bool {
	if captchaService == nil {
		return true
	}
	err := captchaService.Verify(scene, payload.ToServicePayload())
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		RespondError(c, response.CodeBadRequest, "captcha required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		RespondError(c, response.CodeBadRequest, "captcha invalid", nil)
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		RespondError(c, response.CodeInternal, "captcha is misconfigured", err)
	default:
		RespondError(c, response.CodeInternal, "captcha verification failed", err)
	}
	return false
}
